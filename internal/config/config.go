// ABOUTME: Screen options loaded from YAML with defaults for every field
// ABOUTME: Converted into screen.Options; the core packages never read files themselves

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/conscreen/internal/log"
	"github.com/mauromedda/conscreen/pkg/console"
	"github.com/mauromedda/conscreen/pkg/screen"
)

// Settings holds the screen configuration.
type Settings struct {
	Backend      string `yaml:"backend,omitempty"`
	Placeholder  string `yaml:"placeholder,omitempty"`
	StrictText   bool   `yaml:"strict_text,omitempty"`
	NormalizeNFC bool   `yaml:"normalize_nfc,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
}

// Defaults returns the settings used when no file is present.
func Defaults() *Settings {
	return &Settings{
		Backend:     "auto",
		Placeholder: console.DefaultPlaceholder,
		LogLevel:    "info",
	}
}

// Load reads settings from path. A missing file yields Defaults; fields
// absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	ResolveEnvVars(s)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects unknown backend and log level names.
func (s *Settings) Validate() error {
	if _, err := screen.ParseBackend(s.Backend); err != nil {
		return err
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// ScreenOptions converts the settings into options for screen.New.
func (s *Settings) ScreenOptions() (screen.Options, error) {
	backend, err := screen.ParseBackend(s.Backend)
	if err != nil {
		return screen.Options{}, err
	}
	return screen.Options{
		Backend:      backend,
		Placeholder:  s.Placeholder,
		StrictText:   s.StrictText,
		NormalizeNFC: s.NormalizeNFC,
	}, nil
}

// ApplyLogLevel sets the global log level from the settings.
func (s *Settings) ApplyLogLevel() error {
	l, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(l)
	return nil
}
