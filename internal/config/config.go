// Package config loads the sp105ectl YAML configuration, including
// user-defined firmware profiles.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kernzerfall/sp105e-go/internal/ble/protocol"
)

// Duration wraps time.Duration so config values can be written as
// strings like "3s" or "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all application configuration.
type Config struct {
	Target        string                   `yaml:"target"`  // controller MAC
	Adapter       string                   `yaml:"adapter"` // host adapter id, e.g. "hci0"; empty = default
	Profile       string                   `yaml:"profile"` // firmware profile name
	LogLevel      string                   `yaml:"log_level"`
	Connect       ConnectConfig            `yaml:"connect"`
	StatusTimeout Duration                 `yaml:"status_timeout"`
	ScanTimeout   Duration                 `yaml:"scan_timeout"`
	Profiles      map[string]ProfileConfig `yaml:"profiles"`
}

// ConnectConfig holds the connect retry policy.
type ConnectConfig struct {
	Attempts int      `yaml:"attempts"`
	Backoff  Duration `yaml:"backoff"`
}

// ProfileConfig describes a firmware profile as overrides on top of the
// built-in classic table. A zero prefix keeps the classic prefix byte.
type ProfileConfig struct {
	Prefix  uint8            `yaml:"prefix"`
	Opcodes map[string]uint8 `yaml:"opcodes"`
}

// ClassicProfileName is the always-available built-in profile.
const ClassicProfileName = "classic"

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sp105ectl")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Profile:  ClassicProfileName,
		LogLevel: "info",
		Connect: ConnectConfig{
			Attempts: 3,
			Backoff:  Duration(3 * time.Second),
		},
		StatusTimeout: Duration(5 * time.Second),
		ScanTimeout:   Duration(10 * time.Second),
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	if c.Connect.Attempts < 1 {
		return fmt.Errorf("connect.attempts must be >= 1, got %d", c.Connect.Attempts)
	}
	if c.Connect.Backoff <= 0 {
		return fmt.Errorf("connect.backoff must be > 0")
	}
	if c.StatusTimeout <= 0 {
		return fmt.Errorf("status_timeout must be > 0")
	}
	if c.ScanTimeout <= 0 {
		return fmt.Errorf("scan_timeout must be > 0")
	}

	if c.Profile == "" {
		return fmt.Errorf("profile must not be empty")
	}
	if _, ok := c.Profiles[c.Profile]; !ok && c.Profile != ClassicProfileName {
		return fmt.Errorf("profile %q is not defined", c.Profile)
	}

	for name, pc := range c.Profiles {
		for key := range pc.Opcodes {
			if _, err := protocol.ParseKind(key); err != nil {
				return fmt.Errorf("profile %q: %w", name, err)
			}
		}
	}

	return nil
}

// DeviceProfile resolves the selected firmware profile: the built-in
// classic table with the configured prefix and opcode overrides applied.
func (c *Config) DeviceProfile() (protocol.Profile, error) {
	profile := protocol.Classic()
	if c.Profile == ClassicProfileName {
		if _, shadowed := c.Profiles[ClassicProfileName]; !shadowed {
			return profile, nil
		}
	}

	pc, ok := c.Profiles[c.Profile]
	if !ok {
		return protocol.Profile{}, fmt.Errorf("profile %q is not defined", c.Profile)
	}

	profile = profile.WithName(c.Profile)
	if pc.Prefix != 0 {
		profile = profile.WithPrefix(pc.Prefix)
	}
	for key, opcode := range pc.Opcodes {
		kind, err := protocol.ParseKind(key)
		if err != nil {
			return protocol.Profile{}, fmt.Errorf("profile %q: %w", c.Profile, err)
		}
		profile = profile.WithOpcode(kind, opcode)
	}
	return profile, nil
}
