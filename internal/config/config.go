// Package config parses tea.toml, the optional bootstrap file the demo CLI
// (cmd/teadrive) feeds into platform.ProgramWithFlags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultAccentColor is the default demo TUI accent color (indigo).
const DefaultAccentColor = "#7D56F4"

// hexColorRe matches a 6-digit hex color string like "#7D56F4".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config is the top-level tea.toml configuration consumed by the demo CLI's
// Flags entry point.
type Config struct {
	Demo  DemoConfig  `toml:"demo"`
	Clock ClockConfig `toml:"clock"`
	HTTP  HTTPConfig  `toml:"http"`
}

// DemoConfig identifies and styles the running demo.
type DemoConfig struct {
	Name        string `toml:"name"`
	AccentColor string `toml:"accent_color"`
}

// ClockConfig controls the clock demo's tick subscription.
type ClockConfig struct {
	IntervalMS int `toml:"interval_ms"`
}

// HTTPConfig controls the http-fetch demo's task bridge command.
type HTTPConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Interval returns the clock interval as a time.Duration, defaulting to one
// second when unset or non-positive.
func (c ClockConfig) Interval() time.Duration {
	if c.IntervalMS <= 0 {
		return time.Second
	}
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// Timeout returns the HTTP timeout as a time.Duration, defaulting to ten
// seconds when unset or non-positive.
func (c HTTPConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Demo.AccentColor != "" && !hexColorRe.MatchString(c.Demo.AccentColor) {
		errs = append(errs, fmt.Errorf("demo.accent_color must be a hex color (e.g. \"#7D56F4\")"))
	}
	if c.Clock.IntervalMS < 0 {
		errs = append(errs, fmt.Errorf("clock.interval_ms must be >= 0 (0 = default)"))
	}
	if c.HTTP.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("http.timeout_seconds must be >= 0 (0 = default)"))
	}

	return errors.Join(errs...)
}

// Defaults returns a Config with sensible defaults matching the spec.
func Defaults() Config {
	return Config{
		Demo: DemoConfig{
			Name:        "teadrive",
			AccentColor: DefaultAccentColor,
		},
		Clock: ClockConfig{IntervalMS: 1000},
		HTTP: HTTPConfig{
			URL:            "https://api.github.com",
			TimeoutSeconds: 10,
		},
	}
}

// Load reads tea.toml from the given path. If path is empty, it walks up
// from the current working directory looking for tea.toml, falling back to
// Defaults if none is found anywhere above the root. Returns an error if the
// file contains unknown keys (likely typos) or fails validation.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfig()
		if err != nil {
			cfg := Defaults()
			return &cfg, nil
		}
		path = found
	}

	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// findConfig walks up from the current directory looking for tea.toml.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "tea.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config: tea.toml not found (searched up from %s)", dir)
		}
		dir = parent
	}
}

// InitFile writes a default tea.toml template to the given directory.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, "tea.toml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: tea.toml already exists at %s", path)
	}

	content := `# tea.toml — teadrive demo configuration
# Place this file in the root of your project.

[demo]
name = "teadrive"
accent_color = "#7D56F4"  # hex color for the TUI demo's accent elements

[clock]
interval_ms = 1000        # tick period for the clock-switching demo

[http]
url = "https://api.github.com"
timeout_seconds = 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}
