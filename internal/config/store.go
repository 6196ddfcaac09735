package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var ErrNoConfig = errors.New("no config selected")

// DefaultLabel is the profile activated by `config init` and the fallback
// when the active profile is removed.
const DefaultLabel = "lii"

// Store keeps profiles as <Root>/profiles/<label>.yaml and the active label
// in <Root>/active_profile.
type Store struct {
	Root string
}

func ConfigRoot() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "legalinfo")
}

func DefaultStore() Store {
	return Store{Root: ConfigRoot()}
}

func (s Store) ProfilesDir() string {
	return filepath.Join(s.Root, "profiles")
}

func (s Store) activeFile() string {
	return filepath.Join(s.Root, "active_profile")
}

func validateLabel(label string) error {
	label = strings.TrimSpace(label)
	switch {
	case label == "":
		return errors.New("label cannot be empty")
	case label == "." || label == ".." || strings.ContainsAny(label, `/\`):
		return fmt.Errorf("label %q must be a plain name", label)
	}
	return nil
}

func (s Store) path(label string) string {
	return filepath.Join(s.ProfilesDir(), label+".yaml")
}

func (s Store) exists(label string) bool {
	_, err := os.Stat(s.path(label))
	return err == nil
}

// Path returns the file of an existing profile.
func (s Store) Path(label string) (string, error) {
	if err := validateLabel(label); err != nil {
		return "", err
	}
	if !s.exists(label) {
		return "", fmt.Errorf("config %q does not exist", label)
	}
	return s.path(label), nil
}

func (s Store) Current() (string, error) {
	b, err := os.ReadFile(s.activeFile())
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimSpace(string(b))
	if label == "" {
		return "", ErrNoConfig
	}
	return label, nil
}

// ActivePath returns ErrNoConfig when no profile is selected or the selected
// one has been deleted behind the tool's back.
func (s Store) ActivePath() (string, error) {
	label, err := s.Current()
	if err != nil {
		return "", err
	}
	if !s.exists(label) {
		return "", ErrNoConfig
	}
	return s.path(label), nil
}

func (s Store) Load(label string) (*Config, error) {
	path, err := s.Path(label)
	if err != nil {
		return nil, err
	}
	return loadYAML(path)
}

type ProfileInfo struct {
	Label    string
	Path     string
	Active   bool
	Preset   string
	Mode     string
	IndexURL string
	// Err is set when the file does not parse.
	Err error
}

func (s Store) List() ([]ProfileInfo, error) {
	entries, err := os.ReadDir(s.ProfilesDir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	active, _ := s.Current()
	var out []ProfileInfo

	for _, e := range entries {
		label, ok := strings.CutSuffix(e.Name(), ".yaml")
		if e.IsDir() || !ok {
			continue
		}

		info := ProfileInfo{Label: label, Path: s.path(label), Active: label == active}
		if cfg, err := loadYAML(info.Path); err != nil {
			info.Err = err
		} else {
			info.Preset, info.Mode, info.IndexURL = cfg.Preset, cfg.Mode, cfg.IndexURL
		}
		out = append(out, info)
	}

	slices.SortFunc(out, func(a, b ProfileInfo) int { return strings.Compare(a.Label, b.Label) })
	return out, nil
}

func (s Store) Switch(label string) error {
	if _, err := s.Path(label); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.activeFile(), []byte(label), 0644)
}

// Create writes a new profile from a preset.
func (s Store) Create(label, preset string) (string, error) {
	if err := validateLabel(label); err != nil {
		return "", err
	}
	p, err := LookupPreset(preset)
	if err != nil {
		return "", err
	}
	if s.exists(label) {
		return "", fmt.Errorf("config %q already exists", label)
	}
	if err := os.MkdirAll(s.ProfilesDir(), 0755); err != nil {
		return "", err
	}

	path := s.path(label)
	if err := SaveYAML(p.Config(), path); err != nil {
		return "", err
	}
	return path, nil
}

// Import copies a YAML file in as a new profile. The file must parse and
// validate, so a broken profile is never stored.
func (s Store) Import(label, src string) (string, error) {
	if err := validateLabel(label); err != nil {
		return "", err
	}
	if s.exists(label) {
		return "", fmt.Errorf("config %q already exists", label)
	}

	cfg, err := loadYAML(src)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src, err)
	}
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}
	if err := os.MkdirAll(s.ProfilesDir(), 0755); err != nil {
		return "", err
	}

	path := s.path(label)
	if err := SaveYAML(cfg, path); err != nil {
		return "", err
	}
	return path, nil
}

// Seed creates one profile per preset, skipping labels already present, and
// activates DefaultLabel when nothing is active yet.
func (s Store) Seed() ([]string, error) {
	var created []string
	for _, p := range presets {
		if s.exists(p.Name) {
			continue
		}
		path, err := s.Create(p.Name, p.Name)
		if err != nil {
			return created, err
		}
		created = append(created, path)
	}

	if _, err := s.ActivePath(); errors.Is(err, ErrNoConfig) {
		if err := s.Switch(DefaultLabel); err != nil {
			return created, err
		}
	}
	return created, nil
}

// Reset rewrites a profile with the settings of the preset it was created
// from, or DefaultLabel's preset when it has none.
func (s Store) Reset(label string) (string, error) {
	path, err := s.Path(label)
	if err != nil {
		return "", err
	}

	name := DefaultLabel
	if cfg, err := loadYAML(path); err == nil && cfg.Preset != "" {
		name = cfg.Preset
	}
	p, err := LookupPreset(name)
	if err != nil {
		return "", err
	}

	return p.Name, SaveYAML(p.Config(), path)
}

func (s Store) Rename(oldLabel, newLabel string) error {
	oldPath, err := s.Path(oldLabel)
	if err != nil {
		return err
	}
	if err := validateLabel(newLabel); err != nil {
		return err
	}
	if s.exists(newLabel) {
		return fmt.Errorf("config %q already exists", newLabel)
	}

	if err := os.Rename(oldPath, s.path(newLabel)); err != nil {
		return err
	}

	if active, _ := s.Current(); active == oldLabel {
		return s.Switch(newLabel)
	}
	return nil
}

// Remove deletes a profile. Removing the active one requires force; the
// selection then falls back to DefaultLabel, or to none if that is the
// profile being removed or is missing. It returns the new active label.
func (s Store) Remove(label string, force bool) (string, error) {
	path, err := s.Path(label)
	if err != nil {
		return "", err
	}

	active, _ := s.Current()
	if active != label {
		return active, os.Remove(path)
	}
	if !force {
		return active, fmt.Errorf("config %q is active", label)
	}

	if err := os.Remove(path); err != nil {
		return active, err
	}
	if label != DefaultLabel && s.exists(DefaultLabel) {
		return DefaultLabel, s.Switch(DefaultLabel)
	}
	if err := os.Remove(s.activeFile()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	return "", nil
}
