package blobs

import (
	"maps"
	"slices"
)

// sortedKeys gives batch writes a deterministic order.
func sortedKeys(values map[string][]byte) []string {
	return slices.Sorted(maps.Keys(values))
}
