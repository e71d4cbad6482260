package dag

import (
	"sort"

	"basedef/internal/project"
)

type FileID uint32

type FileIndex struct {
	PathToID map[string]FileID
	IDToPath []string
}

// собрать уникальные пути файлов, sort.Strings, раздать ID по порядку.
// Импорты в индекс не попадают: BuildGraph уже видит только найденные файлы.
func BuildIndex(metas []project.FileMeta) FileIndex {
	uniq := make(map[string]struct{}, len(metas))
	for _, meta := range metas {
		if meta.Path != "" {
			uniq[meta.Path] = struct{}{}
		}
	}

	paths := make([]string, 0, len(uniq))
	for path := range uniq {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	pathToID := make(map[string]FileID, len(paths))
	for i, path := range paths {
		pathToID[path] = FileID(i) //nolint:gosec // bounded by len(metas)
	}

	return FileIndex{
		PathToID: pathToID,
		IDToPath: paths,
	}
}
