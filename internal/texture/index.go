package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// extPriority ranks image formats for the same map: lossless WebP wins
// over PNG, which wins over TGA.
var extPriority = map[string]int{
	".webp": 3,
	".png":  2,
	".tga":  1,
}

// Index maps lowercase map names to filesystem paths for one planet
// directory.
type Index struct {
	dir     string
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans dir (non-recursively) for map images.
func BuildIndex(dir string) *Index {
	idx := &Index{dir: dir, entries: make(map[string]string)}

	files, _ := os.ReadDir(dir)
	for _, e := range files {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		rank, ok := extPriority[ext]
		if !ok {
			continue
		}
		stem := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		path := filepath.Join(dir, e.Name())

		existing, exists := idx.entries[stem]
		if !exists || extPriority[strings.ToLower(filepath.Ext(existing))] < rank {
			idx.entries[stem] = path
		}
	}

	return idx
}

// Dir returns the scanned directory.
func (idx *Index) Dir() string { return idx.dir }

// ResolvePath returns the filesystem path for a map name, or ("", false).
// Any extension or directory in name is ignored.
func (idx *Index) ResolvePath(name string) (string, bool) {
	base := filepath.Base(filepath.ToSlash(name))
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed maps.
func (idx *Index) Len() int {
	return len(idx.entries)
}
