package adapters

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FindDocument locates the existing tracked document for an item id
// under an area directory. Item directories are named either "<id>" or
// "<id>-<title-slug>"; the slug half drifts as titles change upstream,
// so discovery goes by id prefix. Returns "" when no document exists.
func FindDocument(areaDir, id string) string {
	matches, err := doublestar.FilepathGlob(filepath.Join(areaDir, id+"*", "README.md"))
	if err != nil {
		return ""
	}

	for _, m := range matches {
		dir := filepath.Base(filepath.Dir(m))
		if dir == id || strings.HasPrefix(dir, id+"-") {
			return m
		}
	}
	return ""
}
