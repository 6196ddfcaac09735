package uscode

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractTitles reads the index page. List-item anchors pointing at title
// pages are scanned first; only when that finds nothing is the page text
// scanned line by line, with every hit pointing at opts.FallbackURL.
func ExtractTitles(markup string, opts Options) []TitleRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return []TitleRecord{}
	}

	candidates := scanTitleAnchors(doc, opts)
	if len(candidates) == 0 {
		candidates = scanTitleLines(doc.Text(), opts)
	}

	return Normalize(candidates)
}

func scanTitleAnchors(doc *goquery.Document, opts Options) []TitleRecord {
	var out []TitleRecord
	seen := map[string]bool{}

	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		a := firstAnchor(li)
		if a == nil {
			return
		}

		href := a.AttrOr("href", "")
		if !strings.Contains(href, opts.PathMarker) {
			return
		}

		label, name, ok := ParseTitleLine(cleanText(a.Text()))
		if !ok || seen[label] {
			return
		}

		u, err := ResolveURL(opts.Origin, href)
		if err != nil {
			return
		}

		seen[label] = true
		out = append(out, TitleRecord{
			TitleNumber: label,
			TitleName:   name,
			URL:         u,
		})
	})

	return out
}

func scanTitleLines(text string, opts Options) []TitleRecord {
	var out []TitleRecord
	for _, line := range strings.Split(text, "\n") {
		label, name, ok := ParseTitleLine(cleanText(line))
		if !ok {
			continue
		}
		out = append(out, TitleRecord{
			TitleNumber: label,
			TitleName:   name,
			URL:         opts.FallbackURL,
		})
	}
	return out
}
