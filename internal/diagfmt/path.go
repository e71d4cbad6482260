package diagfmt

import (
	"path"
	"path/filepath"

	"basedef/internal/source"
)

// displayPath formats the path of file id according to mode.
func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		return source.RelativePath(f.Path, fs.BaseDir())
	case PathModeBasename:
		return path.Base(f.Path)
	default:
		return fs.DisplayPath(id)
	}
}
