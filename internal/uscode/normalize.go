package uscode

import (
	"sort"
	"strings"
)

// Normalize drops every record whose label was already seen (first wins,
// no field merging) and orders the rest with SortTitles.
func Normalize(candidates []TitleRecord) []TitleRecord {
	out := make([]TitleRecord, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))

	for _, t := range candidates {
		if seen[t.TitleNumber] {
			continue
		}
		seen[t.TitleNumber] = true
		out = append(out, t)
	}

	SortTitles(out)
	return out
}

// SortTitles puts numeric labels first in numeric order and keeps
// non-numeric labels after them in the order they were found.
func SortTitles(titles []TitleRecord) {
	sort.SliceStable(titles, func(i, j int) bool {
		return labelLess(titles[i].TitleNumber, titles[j].TitleNumber)
	})
}

func labelLess(a, b string) bool {
	an, bn := IsNumericLabel(a), IsNumericLabel(b)
	switch {
	case an && bn:
		pa, pb := PaddedLabel(trimZeros(a)), PaddedLabel(trimZeros(b))
		if len(pa) != len(pb) {
			return len(pa) < len(pb)
		}
		return pa < pb
	case an:
		return true
	default:
		return false
	}
}

func trimZeros(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" {
		return "0"
	}
	return t
}
