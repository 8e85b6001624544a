package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Theme is the light/dark display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses a theme name case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("invalid theme: %s (want light or dark)", s)
}

// Prefs holds persisted display preferences.
type Prefs struct {
	Theme Theme `json:"theme"`
}

// LoadPrefs reads prefs.json. A missing or unreadable file yields the
// light theme.
func (c *Config) LoadPrefs() Prefs {
	p := Prefs{Theme: ThemeLight}
	data, err := os.ReadFile(c.PrefsPath())
	if err != nil {
		return p
	}
	var stored Prefs
	if err := json.Unmarshal(data, &stored); err != nil {
		return p
	}
	if t, err := ParseTheme(string(stored.Theme)); err == nil {
		p.Theme = t
	}
	return p
}

// SavePrefs writes prefs.json, creating the config directory if needed.
func (c *Config) SavePrefs(p Prefs) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.PrefsPath(), data, 0600)
}

// RemovePrefs deletes prefs.json. A missing file is not an error.
func (c *Config) RemovePrefs() error {
	err := os.Remove(c.PrefsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
