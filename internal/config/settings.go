// Package config loads process configuration from the environment and the
// user-visible settings file.
//
// The two are deliberately separate: environment variables shape how the
// process runs (ports, paths, backend), while the settings file carries
// what the user sees (theme, currency, date input format) and survives
// across installs of prior versions of the application.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Settings is the user-facing configuration record. It is loaded once at
// startup and read-only afterwards; the only write path is the creation
// of the defaults on first run.
type Settings struct {
	Theme      string `json:"theme"`
	Currency   string `json:"currency"`
	DateFormat string `json:"date_format"`
}

// ErrConfigCorrupt marks a settings file that exists but is not valid
// JSON. Startup cannot proceed with unknown settings, so callers treat
// this as fatal rather than falling back to defaults over the user's
// actual data.
var ErrConfigCorrupt = errors.New("settings file is corrupt")

// DefaultSettings returns the record written on first run.
func DefaultSettings() Settings {
	return Settings{
		Theme:      "superhero",
		Currency:   "INR",
		DateFormat: "%Y-%m-%d",
	}
}

// LoadSettings reads the settings file at path, creating it with defaults
// if it does not exist yet.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s := DefaultSettings()
		if err := writeSettings(path, s); err != nil {
			return Settings{}, fmt.Errorf("write default settings: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", ErrConfigCorrupt, path, err)
	}

	// Missing keys fall back to defaults so a hand-edited partial file
	// still yields a complete record.
	defaults := DefaultSettings()
	if s.Theme == "" {
		s.Theme = defaults.Theme
	}
	if s.Currency == "" {
		s.Currency = defaults.Currency
	}
	if s.DateFormat == "" {
		s.DateFormat = defaults.DateFormat
	}
	return s, nil
}

func writeSettings(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
