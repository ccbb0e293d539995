// Package selection gates the start of a tournament on the number of chosen items.
package selection

import (
	"fmt"
	"sort"

	"github.com/okian/rankr/internal/domain/catalog"
)

// Selection bounds, inclusive.
const (
	MinItems = 2
	MaxItems = 10
)

// IsValid reports whether subset has an acceptable size. Duplicates are not checked.
func IsValid(subset []string) bool {
	return len(subset) >= MinItems && len(subset) <= MaxItems
}

// Validate returns an error wrapping ErrInvalidSelection when IsValid is false.
func Validate(subset []string) error {
	if IsValid(subset) {
		return nil
	}
	return fmt.Errorf("%w: select between %d and %d items, got %d",
		ErrInvalidSelection, MinItems, MaxItems, len(subset))
}

// FromCatalog resolves catalog positions into names, in catalog order.
// Repeated positions collapse to one item.
func FromCatalog(c *catalog.Catalog, positions []int) ([]string, error) {
	uniq := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		if _, ok := c.At(p); !ok {
			return nil, fmt.Errorf("%w: position %d", ErrUnknownItem, p)
		}
		uniq[p] = struct{}{}
	}
	ordered := make([]int, 0, len(uniq))
	for p := range uniq {
		ordered = append(ordered, p)
	}
	sort.Ints(ordered)

	out := make([]string, len(ordered))
	for i, p := range ordered {
		out[i], _ = c.At(p)
	}
	return out, nil
}

// FromNames checks that every name belongs to the catalog and returns the
// names in the order given. A name resolving to an item already given is an
// ErrInvalidSelection: an item cannot be compared with itself.
func FromNames(c *catalog.Catalog, names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[int]struct{}, len(names))
	for _, n := range names {
		i := c.IndexOf(n)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownItem, n)
		}
		name, _ := c.At(i)
		if _, dup := seen[i]; dup {
			return nil, fmt.Errorf("%w: %q selected more than once", ErrInvalidSelection, name)
		}
		seen[i] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}
