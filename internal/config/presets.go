package config

import (
	"fmt"
	"strings"
)

// Preset is a ready-made profile for one site layout.
type Preset struct {
	Name    string
	Summary string
	apply   func(c *Config)
}

var presets = []Preset{
	{
		Name:    "lii",
		Summary: "Cornell LII title index, titles mode",
		apply:   func(c *Config) {},
	},
	{
		Name:    "lii-chapters",
		Summary: "Cornell LII titles with their chapter lists",
		apply: func(c *Config) {
			c.Chapters = true
			c.Output = "lii_title_chapters.json"
		},
	},
	{
		Name:    "govinfo",
		Summary: "govinfo US Code collection, labels mode with the standard list as fallback",
		apply: func(c *Config) {
			c.IndexURL = "https://www.govinfo.gov/app/collection/uscode/2024"
			c.Origin = "https://www.govinfo.gov"
			c.Referer = "https://www.govinfo.gov/"
			c.Mode = "labels"
			c.Output = "uscode_titles_parsed.json"
			c.StandardFallback = true
		},
	},
}

func Presets() []Preset {
	return presets
}

func LookupPreset(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}

	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return Preset{}, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(names, ", "))
}

// Config builds the preset's settings on top of the defaults.
func (p Preset) Config() *Config {
	c := DefaultConfig()
	p.apply(c)
	c.Preset = p.Name
	return c
}
