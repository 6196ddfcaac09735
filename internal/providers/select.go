package providers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/zhouqcn/legalinfocollector/internal/uscode"
)

// NameMatchThreshold is the Jaro-Winkler similarity a title name needs to
// match a --name query it does not contain verbatim.
const NameMatchThreshold = 0.88

type Selection struct {
	Title string
	Range string
	List  string
	Name  string
}

func (s Selection) Empty() bool {
	return s == Selection{}
}

// Validate rejects a range that FilterRange could never satisfy.
func (s Selection) Validate() error {
	if s.Title == "" && s.Range != "" {
		if _, _, err := ParseRange(s.Range); err != nil {
			return err
		}
	}
	return nil
}

// ResolveSelection picks what a run filters by. Any selector given on the
// command line replaces the profile's default_range and default_list
// entirely; the defaults only apply when the command line names nothing.
func ResolveSelection(cli Selection, defaultRange, defaultList string) Selection {
	if !cli.Empty() {
		return cli
	}
	return Selection{Range: defaultRange, List: defaultList}
}

// Filter narrows titles by the first non-empty selector, in the order
// title, range, list, name. Result order is preserved.
func Filter(all []uscode.TitleRecord, sel Selection) []uscode.TitleRecord {
	switch {
	case sel.Title != "":
		return FilterByLabel(all, sel.Title)
	case sel.Range != "":
		return FilterRange(all, sel.Range)
	case sel.List != "":
		return FilterList(all, sel.List)
	case sel.Name != "":
		return FilterByName(all, sel.Name)
	}

	return all
}

func FilterByLabel(all []uscode.TitleRecord, label string) []uscode.TitleRecord {
	label = strings.TrimSpace(label)
	out := []uscode.TitleRecord{}
	for _, t := range all {
		if t.TitleNumber == label {
			out = append(out, t)
		}
	}

	return out
}

// ParseRange reads an inclusive numeric range such as "5-12".
func ParseRange(rng string) (start, end int, err error) {
	lo, hi, ok := strings.Cut(rng, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid range %q (want e.g. 1-10)", rng)
	}

	start, err1 := strconv.Atoi(strings.TrimSpace(lo))
	end, err2 := strconv.Atoi(strings.TrimSpace(hi))
	if err1 != nil || err2 != nil || start < 0 {
		return 0, 0, fmt.Errorf("invalid range %q (want e.g. 1-10)", rng)
	}
	if start > end {
		return 0, 0, fmt.Errorf("invalid range %q: %d is after %d", rng, start, end)
	}

	return start, end, nil
}

// FilterRange keeps numeric labels within an inclusive range such as "5-12".
// A malformed range keeps nothing; callers check it with ParseRange first.
func FilterRange(all []uscode.TitleRecord, rng string) []uscode.TitleRecord {
	out := []uscode.TitleRecord{}

	start, end, err := ParseRange(rng)
	if err != nil {
		return out
	}

	for _, t := range all {
		if !uscode.IsNumericLabel(t.TitleNumber) {
			continue
		}
		n, err := strconv.Atoi(t.TitleNumber)
		if err != nil {
			continue
		}
		if n >= start && n <= end {
			out = append(out, t)
		}
	}

	return out
}

// FilterList keeps titles whose label appears in a comma separated list.
func FilterList(all []uscode.TitleRecord, list string) []uscode.TitleRecord {
	wanted := map[string]bool{}
	for p := range strings.SplitSeq(list, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			wanted[p] = true
		}
	}

	out := []uscode.TitleRecord{}
	for _, t := range all {
		if wanted[t.TitleNumber] {
			out = append(out, t)
		}
	}

	return out
}

func FilterByName(all []uscode.TitleRecord, query string) []uscode.TitleRecord {
	q := uscode.FoldForMatch(query)
	if q == "" {
		return []uscode.TitleRecord{}
	}

	out := []uscode.TitleRecord{}
	for _, t := range all {
		name := uscode.FoldForMatch(t.TitleName)
		if strings.Contains(name, q) || matchr.JaroWinkler(name, q, false) >= NameMatchThreshold {
			out = append(out, t)
		}
	}

	return out
}
