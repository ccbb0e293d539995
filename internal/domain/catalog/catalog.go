// Package catalog holds the fixed, ordered list of candidate items a user
// can pick from before a tournament starts.
package catalog

import (
	"fmt"
	"strings"
)

// Catalog is an ordered, immutable list of candidate names.
type Catalog struct {
	names []string
	index map[string]int
}

// New builds a catalog from names. Names are trimmed; blank names are skipped.
// Duplicates are rejected because callers address items by name.
func New(names []string) (*Catalog, error) {
	c := &Catalog{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
	}
	for _, raw := range names {
		name := normalize(raw)
		if name == "" {
			continue
		}
		if _, ok := c.index[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateItem, name)
		}
		c.index[name] = len(c.names)
		c.names = append(c.names, name)
	}
	if len(c.names) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// MustNew is like New but panics on error. Intended for static lists.
func MustNew(names []string) *Catalog {
	c, err := New(names)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of candidates.
func (c *Catalog) Len() int { return len(c.names) }

// Names returns a copy of the candidates in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// At returns the candidate at position i.
func (c *Catalog) At(i int) (string, bool) {
	if i < 0 || i >= len(c.names) {
		return "", false
	}
	return c.names[i], true
}

// IndexOf returns the catalog position of name, or -1.
func (c *Catalog) IndexOf(name string) int {
	if i, ok := c.index[normalize(name)]; ok {
		return i
	}
	return -1
}

// Contains reports whether name is a candidate.
func (c *Catalog) Contains(name string) bool {
	return c.IndexOf(name) >= 0
}

// normalize folds embedded line breaks and surrounding whitespace so names
// render on one line.
func normalize(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
