package uscode

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

const (
	titlePrefix    = "TITLE"
	titleSeparator = " - "
	sectionMarker  = "§§"
	chapterMarker  = "(" + sectionMarker
	enDash         = "–"

	// PadWidth is the width labels are zero-padded to for ordering.
	PadWidth = 5
)

// cleanText collapses runs of Unicode whitespace (non-breaking spaces
// included) into single spaces and trims the ends. Other characters are
// emitted as found on the page.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldForMatch is the comparison form of s: compatibility characters folded
// with NFKC, whitespace collapsed, lower-cased. It is never written to output.
func FoldForMatch(s string) string {
	return strings.ToLower(cleanText(norm.NFKC.String(s)))
}

// ParseTitleLine matches "TITLE <label> - <name>". The label is kept as a
// string so that non-numeric labels such as APPENDIX survive.
func ParseTitleLine(text string) (label, name string, ok bool) {
	if !strings.HasPrefix(text, titlePrefix+" ") {
		return "", "", false
	}

	head, tail, found := strings.Cut(text, titleSeparator)
	if !found {
		return "", "", false
	}

	label = strings.TrimSpace(strings.TrimPrefix(head, titlePrefix))
	name = strings.TrimSpace(tail)
	if label == "" || name == "" {
		return "", "", false
	}

	return label, name, true
}

// SplitChapterText splits "Chapter 1 - Definitions (§§ 101–105)" into the
// chapter name and a hyphenated section range. The range is empty when the
// text has no "§§ ... )" span.
func SplitChapterText(text string) (name, sectionRange string) {
	name = text
	if i := strings.Index(text, chapterMarker); i >= 0 {
		name = strings.TrimSpace(text[:i])
	}

	if i := strings.Index(text, sectionMarker); i >= 0 {
		rest := text[i+len(sectionMarker):]
		if j := strings.Index(rest, ")"); j >= 0 {
			sectionRange = strings.TrimSpace(rest[:j])
			sectionRange = strings.ReplaceAll(sectionRange, enDash, "-")
		}
	}

	return name, sectionRange
}

// ResolveURL makes href absolute against origin. Absolute hrefs are returned
// unchanged.
func ResolveURL(origin, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}

	base, err := url.Parse(origin)
	if err != nil {
		return "", err
	}

	return base.ResolveReference(ref).String(), nil
}

// PaddedLabel left-pads label with zeros to PadWidth.
func PaddedLabel(label string) string {
	if len(label) >= PadWidth {
		return label
	}
	return strings.Repeat("0", PadWidth-len(label)) + label
}

func IsNumericLabel(label string) bool {
	if label == "" {
		return false
	}
	for i := 0; i < len(label); i++ {
		if label[i] < '0' || label[i] > '9' {
			return false
		}
	}
	return true
}

// firstAnchor returns the first descendant anchor with a non-empty href.
func firstAnchor(sel *goquery.Selection) *goquery.Selection {
	a := sel.Find("a[href]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.AttrOr("href", "")) != ""
	}).First()
	if a.Length() == 0 {
		return nil
	}
	return a
}

// strippedStrings returns every non-empty, trimmed text node under sel in
// document order, skipping script and style contents.
func strippedStrings(sel *goquery.Selection) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				out = append(out, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}
	return out
}

// soleString follows single-child chains down to a lone text node, the way an
// element "has a string" only when it wraps exactly one piece of text.
func soleString(n *html.Node) (string, bool) {
	for n != nil {
		if n.Type == html.TextNode {
			return n.Data, true
		}
		if n.FirstChild == nil || n.FirstChild != n.LastChild {
			return "", false
		}
		n = n.FirstChild
	}
	return "", false
}
