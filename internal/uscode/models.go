package uscode

import "gopkg.in/yaml.v3"

type ChapterRecord struct {
	ChapterName  string `json:"chapter_name" yaml:"chapter_name"`
	SectionRange string `json:"section_range" yaml:"section_range"`
	URL          string `json:"url" yaml:"url"`
}

// TitleRecord is one top-level division of the code. Chapters stays nil
// unless chapter expansion ran for the title, so it is dropped from JSON and
// YAML output only in that case; an expansion that found nothing is "[]".
type TitleRecord struct {
	TitleNumber string          `json:"title_number" yaml:"title_number"`
	TitleName   string          `json:"title_name" yaml:"title_name"`
	URL         string          `json:"url" yaml:"url"`
	Chapters    []ChapterRecord `json:"chapters,omitzero" yaml:"chapters"`
}

type yamlTitle struct {
	TitleNumber string          `yaml:"title_number"`
	TitleName   string          `yaml:"title_name"`
	URL         string          `yaml:"url"`
	Chapters    []ChapterRecord `yaml:"chapters,omitempty"`
}

type yamlExpandedTitle struct {
	TitleNumber string          `yaml:"title_number"`
	TitleName   string          `yaml:"title_name"`
	URL         string          `yaml:"url"`
	Chapters    []ChapterRecord `yaml:"chapters"`
}

var _ yaml.Marshaler = TitleRecord{}

// MarshalYAML writes "chapters: []" for an expansion that found nothing and
// leaves the key out when no expansion ran.
func (t TitleRecord) MarshalYAML() (any, error) {
	if t.Chapters == nil {
		return yamlTitle{TitleNumber: t.TitleNumber, TitleName: t.TitleName, URL: t.URL}, nil
	}
	return yamlExpandedTitle(t), nil
}

type Options struct {
	// Origin is prefixed to relative hrefs, e.g. https://www.law.cornell.edu
	Origin string
	// PathMarker must appear in an anchor's href for it to count as a title link.
	PathMarker string
	// FallbackURL is used for titles found by the plain-text scan.
	FallbackURL string
}

const (
	DefaultOrigin     = "https://www.law.cornell.edu"
	DefaultIndexURL   = "https://www.law.cornell.edu/uscode/text"
	DefaultPathMarker = "/text/"
)

func DefaultOptions() Options {
	return Options{
		Origin:      DefaultOrigin,
		PathMarker:  DefaultPathMarker,
		FallbackURL: DefaultIndexURL,
	}
}
