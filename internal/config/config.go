// Package config handles XDG configuration directory, file paths and settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "wtask"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.toml"

	// TokenFile is the stored bearer credential filename.
	TokenFile = "token.json"

	// PrefsFile is the display preferences filename.
	PrefsFile = "prefs.json"
)

// Defaults.
const (
	DefaultAPIURL     = "http://localhost:8081/api"
	DefaultWeatherURL = "https://api.openweathermap.org/data/2.5"
	DefaultCity       = "Berlin"
)

// Environment variables that override config.toml.
const (
	EnvAPIURL        = "WTASK_API_URL"
	EnvWeatherURL    = "WTASK_WEATHER_URL"
	EnvWeatherAPIKey = "OPENWEATHER_API_KEY"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Color enables ANSI colors for status labels.
	Color bool

	// APIURL is the base URL of the task/auth backend.
	APIURL string

	// WeatherURL is the base URL of the weather API.
	WeatherURL string

	// WeatherAPIKey is sent as the appid parameter.
	WeatherAPIKey string

	// WeatherLang is the optional description language (e.g. "de").
	WeatherLang string

	// DefaultCity is used by the weather command when no city is given.
	DefaultCity string
}

// settings mirrors config.toml.
type settings struct {
	APIURL        string `toml:"api_url"`
	WeatherURL    string `toml:"weather_url"`
	WeatherAPIKey string `toml:"weather_api_key"`
	WeatherLang   string `toml:"weather_lang"`
	DefaultCity   string `toml:"default_city"`
	Color         bool   `toml:"color"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/wtask or $HOME/.config/wtask.
// Settings are read from config.toml when present, then overridden by the
// environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:         dir,
		APIURL:      DefaultAPIURL,
		WeatherURL:  DefaultWeatherURL,
		DefaultCity: DefaultCity,
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) loadSettings() error {
	var s settings
	_, err := toml.DecodeFile(c.SettingsPath(), &s)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	setIfNotEmpty(&c.APIURL, s.APIURL)
	setIfNotEmpty(&c.WeatherURL, s.WeatherURL)
	setIfNotEmpty(&c.WeatherAPIKey, s.WeatherAPIKey)
	setIfNotEmpty(&c.WeatherLang, s.WeatherLang)
	setIfNotEmpty(&c.DefaultCity, s.DefaultCity)
	c.Color = s.Color
	return nil
}

func (c *Config) applyEnv() {
	setIfNotEmpty(&c.APIURL, os.Getenv(EnvAPIURL))
	setIfNotEmpty(&c.WeatherURL, os.Getenv(EnvWeatherURL))
	setIfNotEmpty(&c.WeatherAPIKey, os.Getenv(EnvWeatherAPIKey))
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	c.WeatherURL = strings.TrimRight(c.WeatherURL, "/")
}

func setIfNotEmpty(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// SettingsPath returns the path to config.toml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// TokenPath returns the path to the stored credential file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// PrefsPath returns the path to the display preferences file.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.Dir, PrefsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
