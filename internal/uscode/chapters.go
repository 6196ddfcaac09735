package uscode

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var mainSelectors = []string{"main", `[role="main"]`}

// ExtractChapters lists the chapters of one title page. Only list items inside
// the main content region are considered; a page without one yields an empty,
// non-nil slice. Repeated entries are kept.
func ExtractChapters(markup string, opts Options) []ChapterRecord {
	out := []ChapterRecord{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return out
	}

	region := mainRegion(doc)
	if region == nil {
		return out
	}

	region.Find("li").Each(func(_ int, li *goquery.Selection) {
		if ch, ok := parseChapterItem(li, opts); ok {
			out = append(out, ch)
		}
	})

	return out
}

func mainRegion(doc *goquery.Document) *goquery.Selection {
	for _, sel := range mainSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}

func parseChapterItem(li *goquery.Selection, opts Options) (ChapterRecord, bool) {
	text := cleanText(li.Text())
	if text == "" {
		return ChapterRecord{}, false
	}

	name, sectionRange := SplitChapterText(text)

	var u string
	if a := firstAnchor(li); a != nil {
		resolved, err := ResolveURL(opts.Origin, a.AttrOr("href", ""))
		if err != nil {
			return ChapterRecord{}, false
		}
		u = resolved
	}

	return ChapterRecord{
		ChapterName:  name,
		SectionRange: sectionRange,
		URL:          u,
	}, true
}
