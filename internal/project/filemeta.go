package project

import "basedef/internal/source"

// ImportMeta is one relative import of a file, resolved to a program path.
type ImportMeta struct {
	Path string
	Span source.Span
}

// FileMeta describes one source file of the program for dependency hashing.
type FileMeta struct {
	Path        string       // нормализованный путь: "src/app/a.ts"
	Span        source.Span  // span всего файла
	Imports     []ImportMeta // только относительные импорты, найденные в программе
	ContentHash Digest       // хеш содержимого файла (из FileSet)
	Hash        Digest       // хеш с учётом транзитивных зависимостей
}
