package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsSourceFile reports whether path is a TypeScript source the compiler reads.
// Declaration files and specs are skipped.
func IsSourceFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".ts") &&
		!strings.HasSuffix(base, ".d.ts") &&
		!strings.HasSuffix(base, ".spec.ts")
}

// skipDir reports directories discovery never descends into.
func skipDir(name string) bool {
	return name == "node_modules" || (len(name) > 1 && strings.HasPrefix(name, "."))
}

// ListSources возвращает отсортированный список всех *.ts файлов под roots.
// A root may be a single file; it is taken as is when it is a source file.
func ListSources(roots ...string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("source root: %w", err)
		}
		if !info.IsDir() {
			if IsSourceFile(root) {
				add(filepath.Clean(root))
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if IsSourceFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
