// Package catalog turns question files into subjects and keeps the local
// store in step with the set of subjects the app ships with.
package catalog

import "sort"

// Entry is one subject of the catalog.
type Entry struct {
	DisplayName string
	File        QuestionFile
}

// Catalog maps a subject key to its entry. The key becomes the subject id.
type Catalog map[string]Entry

// Keys returns the catalog keys in sorted order.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
