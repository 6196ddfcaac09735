package uscode

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const indexPage = `<!doctype html>
<html><body>
  <nav><ul><li><a href="/about">About LII</a></li></ul></nav>
  <ul class="toc">
    <li><a href="/uscode/text/10">TITLE 10 - ARMED FORCES</a></li>
    <li><a href="/uscode/text/4">TITLE 4 - FLAG AND SEAL, SEAT OF GOVERNMENT, AND THE STATES</a></li>
    <li><a href="/uscode/text/100">TITLE 100 - HYPOTHETICAL</a></li>
    <li><a href="/uscode/text/appendix">TITLE APPENDIX - APPENDIX TO THE CODE</a></li>
    <li><a href="/uscode/text/4-dup">TITLE 4 - DUPLICATE NAME</a></li>
    <li><a href="/uscode/text/5">Title 5 - lower case is ignored</a></li>
    <li><a href="/search?q=7">TITLE 7 - NOT A TITLE PAGE</a></li>
    <li><a href="/uscode/text/8">TITLE 8 – EN DASH IS NOT A SEPARATOR</a></li>
    <li><a href="">TITLE 9 - EMPTY HREF</a></li>
  </ul>
</body></html>`

func TestExtractTitlesEndToEnd(t *testing.T) {
	page := `<ul><li><a href="/uscode/text/4">TITLE 4 - FLAG AND SEAL, SEAT OF GOVERNMENT, AND THE STATES</a></li></ul>`

	got := ExtractTitles(page, DefaultOptions())

	want := []TitleRecord{{
		TitleNumber: "4",
		TitleName:   "FLAG AND SEAL, SEAT OF GOVERNMENT, AND THE STATES",
		URL:         "https://www.law.cornell.edu/uscode/text/4",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractTitlesFiltersDedupsAndOrders(t *testing.T) {
	got := ExtractTitles(indexPage, DefaultOptions())

	var labels []string
	for _, title := range got {
		labels = append(labels, title.TitleNumber)
	}
	require.Equal(t, []string{"4", "10", "100", "APPENDIX"}, labels)

	require.Equal(t, "FLAG AND SEAL, SEAT OF GOVERNMENT, AND THE STATES", got[0].TitleName)
	require.Equal(t, "https://www.law.cornell.edu/uscode/text/4", got[0].URL)
	require.Equal(t, "https://www.law.cornell.edu/uscode/text/appendix", got[3].URL)
	for _, title := range got {
		require.Nil(t, title.Chapters)
	}
}

func TestExtractTitlesIsIdempotent(t *testing.T) {
	first, err := json.Marshal(ExtractTitles(indexPage, DefaultOptions()))
	require.NoError(t, err)
	second, err := json.Marshal(ExtractTitles(indexPage, DefaultOptions()))
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
	require.NotContains(t, string(first), "chapters")
}

func TestExtractTitlesKeepsAbsoluteHref(t *testing.T) {
	page := `<ul><li><a href="https://mirror.example.org/uscode/text/12">TITLE 12 - BANKS AND BANKING</a></li></ul>`

	got := ExtractTitles(page, DefaultOptions())

	require.Len(t, got, 1)
	require.Equal(t, "https://mirror.example.org/uscode/text/12", got[0].URL)
}

func TestExtractTitlesUsesFirstAnchorOnly(t *testing.T) {
	page := `<ul><li>
		<a href="/uscode/text/1/notes">notes</a>
		<a href="/uscode/text/1">TITLE 1 - GENERAL PROVISIONS</a>
	</li></ul>`

	got := ExtractTitles(page, DefaultOptions())

	require.Len(t, got, 1)
	require.Equal(t, DefaultIndexURL, got[0].URL, "found by the text scan, not the anchor")
}

func TestExtractTitlesCollapsesWhitespace(t *testing.T) {
	page := "<ul><li><a href=\"/uscode/text/2\">\n  TITLE 2 -  THE\n CONGRESS </a></li></ul>"

	got := ExtractTitles(page, DefaultOptions())

	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].TitleNumber)
	require.Equal(t, "THE CONGRESS", got[0].TitleName)
}

func TestExtractTitlesFallsBackToText(t *testing.T) {
	page := `<html><body>
		<div>TITLE 3 - THE PRESIDENT</div>
		<div>TITLE 1 - GENERAL PROVISIONS</div>
		<div>TITLE 3 - SECOND SIGHTING</div>
		<div>not a title</div>
	</body></html>`
	opts := DefaultOptions()
	opts.FallbackURL = "https://example.org/index"

	got := ExtractTitles(page, opts)

	want := []TitleRecord{
		{TitleNumber: "1", TitleName: "GENERAL PROVISIONS", URL: "https://example.org/index"},
		{TitleNumber: "3", TitleName: "THE PRESIDENT", URL: "https://example.org/index"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractTitlesSkipsFallbackWhenAnchorsMatch(t *testing.T) {
	page := `<ul><li><a href="/uscode/text/4">TITLE 4 - FLAG</a></li></ul>
		<p>TITLE 5 - GOVERNMENT ORGANIZATION</p>`

	got := ExtractTitles(page, DefaultOptions())

	require.Len(t, got, 1)
	require.Equal(t, "4", got[0].TitleNumber)
}

func TestExtractTitlesMalformedInput(t *testing.T) {
	for _, markup := range []string{
		"",
		"<<<>>>",
		"<li><a href='/uscode/text/1'>",
		"\x00\xff\xfe",
		"<html><body><ul><li>TITLE</li></ul>",
	} {
		got := ExtractTitles(markup, DefaultOptions())
		require.NotNil(t, got)
		require.Empty(t, got, "markup %q", markup)
	}
}

func TestExtractTitlesCustomMarker(t *testing.T) {
	page := `<ul>
		<li><a href="/code/title/6">TITLE 6 - DOMESTIC SECURITY</a></li>
		<li><a href="/uscode/text/4">TITLE 4 - FLAG</a></li>
	</ul>`
	opts := Options{Origin: "https://code.example.gov", PathMarker: "/title/"}

	got := ExtractTitles(page, opts)

	require.Len(t, got, 1)
	require.Equal(t, "https://code.example.gov/code/title/6", got[0].URL)
}

func TestExtractTitlesKeepsNonASCIIName(t *testing.T) {
	page := `<ul><li><a href="/uscode/text/26">TITLE&nbsp;26 - INTERNAL REVENUE CODE ﬁnal ½ ™</a></li></ul>`

	got := ExtractTitles(page, DefaultOptions())

	require.Len(t, got, 1)
	require.Equal(t, "26", got[0].TitleNumber)
	require.Equal(t, "INTERNAL REVENUE CODE ﬁnal ½ ™", got[0].TitleName)
}
