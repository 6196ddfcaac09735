package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/zhouqcn/legalinfocollector/internal/providers"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Preset names the preset a profile was created from; `config reset`
	// restores it.
	Preset string `yaml:"preset,omitempty"`

	IndexURL        string `yaml:"index_url"`
	Origin          string `yaml:"origin"`
	TitlePathMarker string `yaml:"title_path_marker"`

	Output string `yaml:"output"`
	Format string `yaml:"format"`
	Mode   string `yaml:"mode"`

	Chapters       bool `yaml:"chapters"`
	ChapterWorkers int  `yaml:"chapter_workers"`
	SampleSize     int  `yaml:"sample_size"`
	Debug          bool `yaml:"debug"`

	DefaultRange string `yaml:"default_range"`
	DefaultList  string `yaml:"default_list"`

	StandardFallback bool `yaml:"standard_fallback"`

	UserAgent          string `yaml:"user_agent"`
	AcceptLanguage     string `yaml:"accept_language"`
	Referer            string `yaml:"referer"`
	Cookie             string `yaml:"cookie"`
	CookieFile         string `yaml:"cookie_file"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	Retries            int    `yaml:"retries"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	CloudflareBypass   bool   `yaml:"cloudflare_bypass"`

	CacheDir      string `yaml:"cache_dir"`
	CacheTTLHours int    `yaml:"cache_ttl_hours"`
}

// Options carries command-line overrides. Non-zero fields of Override replace
// the loaded values; false booleans never switch a configured true off.
type Options struct {
	IgnoreConfig bool
	Override     Config
}

func DefaultConfig() *Config {
	return &Config{
		IndexURL:        "https://www.law.cornell.edu/uscode/text",
		Origin:          "https://www.law.cornell.edu",
		TitlePathMarker: "/text/",
		Output:          "lii_title.json",
		Format:          "json",
		Mode:            "titles",
		ChapterWorkers:  1,
		SampleSize:      5,
		AcceptLanguage:  "en-US,en;q=0.9",
		Referer:         "https://www.law.cornell.edu/",
		TimeoutSeconds:  15,
		Retries:         3,
		CacheTTLHours:   24,
	}
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

func (c *Config) Validate() error {
	var errs []error
	if c.IndexURL == "" {
		errs = append(errs, errors.New("index_url is empty"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output is empty"))
	}
	if c.ChapterWorkers < 1 {
		errs = append(errs, fmt.Errorf("chapter_workers must be at least 1, got %d", c.ChapterWorkers))
	}
	if c.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries must not be negative, got %d", c.Retries))
	}
	if c.DefaultRange != "" {
		if _, _, err := providers.ParseRange(c.DefaultRange); err != nil {
			errs = append(errs, fmt.Errorf("default_range: %w", err))
		}
	}
	if c.TimeoutSeconds < 1 {
		errs = append(errs, fmt.Errorf("timeout_seconds must be at least 1, got %d", c.TimeoutSeconds))
	}
	return errors.Join(errs...)
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// loadYAML reads path on top of the defaults, so keys missing from an older
// profile keep their default values.
func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		if err := mergeConfig(cfg, opts); err != nil {
			return nil, "", err
		}
		return cfg, "(ignored config)", nil
	}

	activePath, err := DefaultStore().ActivePath()
	if errors.Is(err, ErrNoConfig) {
		cfg := DefaultConfig()
		if err := mergeConfig(cfg, opts); err != nil {
			return nil, "", err
		}
		return cfg, "(default config in memory)\nRun `legalinfo config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	if err := mergeConfig(cfg, opts); err != nil {
		return nil, "", err
	}

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) error {
	if err := mergo.Merge(c, o.Override, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge flags into config: %w", err)
	}
	normalizeDefaults(c)
	return nil
}

func normalizeDefaults(c *Config) {
	def := DefaultConfig()
	if c.IndexURL == "" {
		c.IndexURL = def.IndexURL
	}
	if c.Origin == "" {
		c.Origin = def.Origin
	}
	if c.TitlePathMarker == "" {
		c.TitlePathMarker = def.TitlePathMarker
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.Mode == "" {
		c.Mode = def.Mode
	}
	if c.ChapterWorkers == 0 {
		c.ChapterWorkers = def.ChapterWorkers
	}
	if c.SampleSize == 0 {
		c.SampleSize = def.SampleSize
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
}

func (c *Config) Print(w io.Writer) {
	if c.Preset != "" {
		fmt.Fprintf(w, " -preset: %s\n", c.Preset)
	}
	fmt.Fprintf(w, " -index_url: %s\n", c.IndexURL)
	fmt.Fprintf(w, " -origin: %s\n", c.Origin)
	fmt.Fprintf(w, " -title_path_marker: %s\n", c.TitlePathMarker)
	fmt.Fprintf(w, " -mode: %s\n", c.Mode)
	fmt.Fprintf(w, " -output: %s (%s)\n", c.Output, c.Format)
	if c.Chapters {
		fmt.Fprintf(w, " -chapters: %t\n", c.Chapters)
		fmt.Fprintf(w, " -chapter_workers: %d\n", c.ChapterWorkers)
	}
	fmt.Fprintf(w, " -sample_size: %d\n", c.SampleSize)
	if c.Debug {
		fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	if c.DefaultRange != "" {
		fmt.Fprintf(w, " -range: %s\n", c.DefaultRange)
	}
	if c.DefaultList != "" {
		fmt.Fprintf(w, " -list: %s\n", c.DefaultList)
	}
	if c.StandardFallback {
		fmt.Fprintf(w, " -standard_fallback: %t\n", c.StandardFallback)
	}
	if c.UserAgent != "" {
		fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	fmt.Fprintf(w, " -timeout_seconds: %d\n", c.TimeoutSeconds)
	fmt.Fprintf(w, " -retries: %d\n", c.Retries)
	if c.InsecureSkipVerify {
		fmt.Fprintf(w, " -insecure_skip_verify: %t\n", c.InsecureSkipVerify)
	}
	if c.CloudflareBypass {
		fmt.Fprintf(w, " -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.CacheDir != "" {
		fmt.Fprintf(w, " -cache_dir: %s (ttl %dh)\n", c.CacheDir, c.CacheTTLHours)
	}
}
