package uscode

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// StandardTitleCount is the number of titles in the United States Code.
const StandardTitleCount = 54

var (
	reLabelStart = regexp.MustCompile(`^Title\s+\d+`)
	reLabel      = regexp.MustCompile(`Title\s+\d+`)
	reDigit      = regexp.MustCompile(`\d`)
)

// ExtractLabels collects plain "Title N" strings from pages that do not follow
// the TITLE <label> - <name> anchor layout. Text nodes are tried first: one
// starting with "Title N", or any longer text mentioning Title and a number.
// If none qualify, div/span/p elements wrapping a single "Title N" string are
// used instead.
func ExtractLabels(markup string) []string {
	out := []string{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return out
	}

	seen := map[string]bool{}
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, text := range strippedStrings(doc.Selection) {
		switch {
		case reLabelStart.MatchString(text):
			add(text)
		case strings.Contains(text, "Title") && reDigit.MatchString(text) && utf8.RuneCountInString(text) > 10:
			add(text)
		}
	}
	if len(out) > 0 {
		return out
	}

	doc.Find("div, span, p").Each(func(_ int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		own, ok := soleString(s.Nodes[0])
		if !ok || !reLabel.MatchString(own) {
			return
		}

		text := strings.TrimSpace(s.Text())
		if strings.Contains(text, "Title") && utf8.RuneCountInString(text) > 5 {
			add(text)
		}
	})

	return out
}

// StandardLabels returns "Title 1" through "Title n".
func StandardLabels(n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("Title %d", i))
	}
	return out
}
