// Package strings provides string slice helpers.
package strings

import (
	"strings"
)

// DistinctIDs trims each id and drops blanks and repeats. Order of first
// occurrence is preserved. A nil or empty input returns nil.
//
//	DistinctIDs([]string{" P-7", "P-9", "", "P-7"})
//	// []string{"P-7", "P-9"}
func DistinctIDs(ids []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
