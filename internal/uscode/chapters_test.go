package uscode

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExtractChapters(t *testing.T) {
	page := `<html><body>
	<ul><li><a href="/outside">Outside main (§§ 1–2)</a></li></ul>
	<main>
	  <ol>
	    <li><a href="/uscode/text/4/chapter-1">Chapter 1 - THE FLAG (§§ 1–10)</a></li>
	    <li><a href="/uscode/text/4/chapter-2">Chapter 2 - THE SEAL (§§ 41, 42)</a></li>
	    <li>Chapter 3 - NO LINK</li>
	    <li><a href="https://other.example/ch4">Chapter 4 - REPEATED (§§ 41, 42)</a></li>
	    <li>   </li>
	  </ol>
	</main>
	</body></html>`

	got := ExtractChapters(page, DefaultOptions())

	want := []ChapterRecord{
		{ChapterName: "Chapter 1 - THE FLAG", SectionRange: "1-10", URL: "https://www.law.cornell.edu/uscode/text/4/chapter-1"},
		{ChapterName: "Chapter 2 - THE SEAL", SectionRange: "41, 42", URL: "https://www.law.cornell.edu/uscode/text/4/chapter-2"},
		{ChapterName: "Chapter 3 - NO LINK", SectionRange: "", URL: ""},
		{ChapterName: "Chapter 4 - REPEATED", SectionRange: "41, 42", URL: "https://other.example/ch4"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractChaptersRoleMain(t *testing.T) {
	page := `<div role="main"><ul><li><a href="/c/1">Chapter 1 - Definitions (§§ 101–105)</a></li></ul></div>`

	got := ExtractChapters(page, DefaultOptions())

	require.Len(t, got, 1)
	require.Equal(t, "Chapter 1 - Definitions", got[0].ChapterName)
	require.Equal(t, "101-105", got[0].SectionRange)
}

func TestExtractChaptersWithoutMainRegion(t *testing.T) {
	page := `<html><body><ul><li><a href="/c/1">Chapter 1 - Definitions (§§ 101–105)</a></li></ul></body></html>`

	got := ExtractChapters(page, DefaultOptions())

	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestExtractChaptersSkipsBadHref(t *testing.T) {
	page := `<main><ul>
		<li><a href="http://[::1">Chapter 1 - BROKEN (§§ 1–2)</a></li>
		<li><a href="/c/2">Chapter 2 - FINE (§§ 3–4)</a></li>
	</ul></main>`

	got := ExtractChapters(page, DefaultOptions())

	require.Len(t, got, 1)
	require.Equal(t, "Chapter 2 - FINE", got[0].ChapterName)
}

func TestExtractChaptersEmptyMarkup(t *testing.T) {
	require.Empty(t, ExtractChapters("", DefaultOptions()))
}

func TestExtractChaptersKeepsNonASCIIName(t *testing.T) {
	page := `<main><ul><li><a href="/uscode/text/26/chapter-1">Chapter 1 - NORMAL TAXES ﬁled ½&nbsp;year (§§ 1–5)</a></li></ul></main>`

	got := ExtractChapters(page, DefaultOptions())

	require.Len(t, got, 1)
	require.Equal(t, "Chapter 1 - NORMAL TAXES ﬁled ½ year", got[0].ChapterName)
	require.Equal(t, "1-5", got[0].SectionRange)
}
