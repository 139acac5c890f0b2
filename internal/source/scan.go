package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Item is one decodable input file.
type Item struct {
	Name string // file stem, lowercased; used as the output directory name
	Path string
}

// Scan walks root for decodable images. Files sharing a stem (case
// insensitive) within the walk collapse to one item, preferring lossless
// formats. A regular file root yields a single item. Items are sorted by
// name.
func Scan(root string) ([]Item, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source: scan %s: %w", root, err)
	}
	if !info.IsDir() {
		if !Supported(root) {
			return nil, fmt.Errorf("source: scan %s: %w", root, ErrUnsupported)
		}
		return []Item{{Name: stem(root), Path: root}}, nil
	}

	byStem := make(map[string]string)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !Supported(path) {
			return nil
		}
		s := stem(path)
		existing, ok := byStem[s]
		if !ok || rank(path) < rank(existing) {
			byStem[s] = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source: scan %s: %w", root, err)
	}

	items := make([]Item, 0, len(byStem))
	for s, p := range byStem {
		items = append(items, Item{Name: s, Path: p})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
