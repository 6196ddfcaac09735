package pipeline

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhouqcn/legalinfocollector/internal/providers"
	"github.com/zhouqcn/legalinfocollector/internal/ui"
	"github.com/zhouqcn/legalinfocollector/internal/uscode"
)

type fakeScraper struct {
	titles []uscode.TitleRecord
	labels []string

	mu        sync.Mutex
	requested []string
}

func (f *fakeScraper) GetTitles(context.Context, string) []uscode.TitleRecord {
	out := make([]uscode.TitleRecord, len(f.titles))
	copy(out, f.titles)
	return out
}

func (f *fakeScraper) GetChapters(_ context.Context, t uscode.TitleRecord) []uscode.ChapterRecord {
	f.mu.Lock()
	f.requested = append(f.requested, t.TitleNumber)
	f.mu.Unlock()

	if t.TitleNumber == "5" {
		return []uscode.ChapterRecord{}
	}
	return []uscode.ChapterRecord{{
		ChapterName:  fmt.Sprintf("CHAPTER 1 - OF TITLE %s", t.TitleNumber),
		SectionRange: "1-10",
		URL:          t.URL + "/chapter-1",
	}}
}

func (f *fakeScraper) GetLabels(context.Context, string) []string {
	return f.labels
}

var _ providers.Scraper = (*fakeScraper)(nil)

func sampleTitles(n int) []uscode.TitleRecord {
	out := make([]uscode.TitleRecord, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, uscode.TitleRecord{
			TitleNumber: fmt.Sprint(i),
			TitleName:   fmt.Sprintf("NAME %d", i),
			URL:         fmt.Sprintf("https://www.law.cornell.edu/uscode/text/%d", i),
		})
	}
	return out
}

type recordingProgress struct {
	total, done, chapters int
	finished              bool
}

func (r *recordingProgress) SetTotal(total int) { r.total = total }
func (r *recordingProgress) Update(done, total, chapters int) {
	r.done, r.total, r.chapters = done, total, chapters
}
func (r *recordingProgress) MarkDone() { r.finished = true }

func TestRunTitlesWithoutChapters(t *testing.T) {
	s := &fakeScraper{titles: sampleTitles(3)}
	stats := &ui.Stats{}

	res, err := New(s, nil, stats).Run(context.Background(), Options{Mode: ModeTitles})
	require.NoError(t, err)

	require.Len(t, res.Titles, 3)
	for _, title := range res.Titles {
		assert.Nil(t, title.Chapters)
	}
	assert.Empty(t, s.requested)
	assert.EqualValues(t, 3, stats.TotalTitles.Load())
}

func TestRunTitlesSelection(t *testing.T) {
	s := &fakeScraper{titles: sampleTitles(10)}

	res, err := New(s, nil, nil).Run(context.Background(), Options{
		Selection: providers.Selection{Range: "3-5"},
		Chapters:  true,
	})
	require.NoError(t, err)

	labels := make([]string, 0, len(res.Titles))
	for _, title := range res.Titles {
		labels = append(labels, title.TitleNumber)
	}
	require.Equal(t, []string{"3", "4", "5"}, labels)
	require.ElementsMatch(t, []string{"3", "4", "5"}, s.requested)
}

func TestRunChaptersSequentialAndParallelAgree(t *testing.T) {
	run := func(workers int) []uscode.TitleRecord {
		progress := &recordingProgress{}
		res, err := New(&fakeScraper{titles: sampleTitles(12)}, nil, nil).Run(context.Background(), Options{
			Chapters: true,
			Workers:  workers,
			Progress: progress,
		})
		require.NoError(t, err)
		require.True(t, progress.finished)
		require.Equal(t, 12, progress.done)
		require.Equal(t, 11, progress.chapters)
		return res.Titles
	}

	sequential := run(1)
	parallel := run(4)

	if diff := cmp.Diff(sequential, parallel); diff != "" {
		t.Fatalf("parallel expansion differs (-seq +par):\n%s", diff)
	}

	require.NotNil(t, sequential[4].Chapters)
	require.Empty(t, sequential[4].Chapters)
	require.Equal(t, "https://www.law.cornell.edu/uscode/text/1/chapter-1", sequential[0].Chapters[0].URL)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(&fakeScraper{titles: sampleTitles(2)}, nil, nil).Run(ctx, Options{Chapters: true})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunLabels(t *testing.T) {
	s := &fakeScraper{labels: []string{"Title 1", "Title 2"}}

	res, err := New(s, nil, nil).Run(context.Background(), Options{Mode: ModeLabels})
	require.NoError(t, err)
	require.Equal(t, []string{"Title 1", "Title 2"}, res.Labels)
	require.Nil(t, res.Titles)
}

func TestRunLabelsStandardFallback(t *testing.T) {
	s := &fakeScraper{labels: []string{}}

	res, err := New(s, nil, nil).Run(context.Background(), Options{Mode: ModeLabels})
	require.NoError(t, err)
	require.Empty(t, res.Labels)

	res, err = New(s, nil, nil).Run(context.Background(), Options{Mode: ModeLabels, StandardFallback: true})
	require.NoError(t, err)
	require.Len(t, res.Labels, uscode.StandardTitleCount)
	require.Equal(t, "Title 54", res.Labels[53])
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeTitles, m)

	m, err = ParseMode("labels")
	require.NoError(t, err)
	require.Equal(t, ModeLabels, m)

	_, err = ParseMode("chapters")
	require.Error(t, err)
}
