package diagfmt

import (
	"os"
	"path/filepath"
	"strings"

	"powerassert/internal/source"
)

func displayPath(f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	if f.Flags&source.FileVirtual != 0 || mode == PathModeAsIs {
		return f.Path
	}
	switch mode {
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
		return f.Path
	}
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return f.Path
	}
	wd, err := os.Getwd()
	if err != nil {
		return abs
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return abs
	}
	return rel
}
