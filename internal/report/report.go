package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/zhouqcn/legalinfocollector/internal/util"
	"github.com/zhouqcn/legalinfocollector/internal/uscode"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json or yaml)", s)
}

// WriteTitles replaces path with the encoded titles. A nil slice is written
// as an empty array.
func WriteTitles(path string, titles []uscode.TitleRecord, format Format) error {
	if titles == nil {
		titles = []uscode.TitleRecord{}
	}
	data, err := Encode(titles, format)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func WriteLabels(path string, labels []string, format Format) error {
	if labels == nil {
		labels = []string{}
	}
	data, err := Encode(labels, format)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Encode renders v with two-space indentation. JSON output keeps <, > and &
// unescaped and ends with a newline.
func Encode(v any, format Format) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "", FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	return buf.Bytes(), nil
}

// PrintTitleSummary prints the count and the first n titles, or a hint when
// nothing was extracted.
func PrintTitleSummary(w io.Writer, titles []uscode.TitleRecord, n int) {
	if len(titles) == 0 {
		fmt.Fprintln(w, "\nNo titles were extracted")
		fmt.Fprintln(w, "Possible reasons:")
		fmt.Fprintln(w, "  1. Page structure changed")
		fmt.Fprintln(w, "  2. Anti-scraping measures detected")
		fmt.Fprintln(w, "  3. Network issues")
		return
	}
	n = max(n, 0)

	fmt.Fprintf(w, "\nSuccessfully extracted %s\n", util.Plural(len(titles), "title"))

	chapters := 0
	expanded := false
	for _, t := range titles {
		if t.Chapters != nil {
			expanded = true
			chapters += len(t.Chapters)
		}
	}
	if expanded {
		fmt.Fprintf(w, "Chapters found: %d\n", chapters)
	}

	fmt.Fprintln(w, "\nSample of extracted titles:")
	for i, t := range titles[:min(n, len(titles))] {
		fmt.Fprintf(w, "  %d. TITLE %s - %s\n", i+1, t.TitleNumber, t.TitleName)
	}
	if len(titles) > n {
		fmt.Fprintf(w, "  ... and %d more titles\n", len(titles)-n)
	}
}

func PrintLabelSummary(w io.Writer, labels []string, n int) {
	if len(labels) == 0 {
		fmt.Fprintln(w, "\nNo titles were extracted")
		return
	}
	n = max(n, 0)

	fmt.Fprintf(w, "\nFound %s\n", util.Plural(len(labels), "title"))
	for i, l := range labels[:min(n, len(labels))] {
		fmt.Fprintf(w, "  %d. %s\n", i+1, l)
	}
	if len(labels) > n {
		fmt.Fprintf(w, "  ... and %d more titles\n", len(labels)-n)
	}
}

// PrintTitleTable renders titles for --dry-run.
func PrintTitleTable(w io.Writer, titles []uscode.TitleRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Title", "Name", "Chapters", "URL"})
	for _, title := range titles {
		chapters := "-"
		if title.Chapters != nil {
			chapters = fmt.Sprint(len(title.Chapters))
		}
		t.AppendRow(table.Row{title.TitleNumber, title.TitleName, chapters, title.URL})
	}
	t.AppendFooter(table.Row{"", util.Plural(len(titles), "title"), "", ""})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
