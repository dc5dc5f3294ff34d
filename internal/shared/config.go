package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Deezer      DeezerConfig      `toml:"deezer"`
	Output      OutputConfig      `toml:"output"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify client credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenURL     string `toml:"token_url"`
}

// DeezerConfig contains Deezer API settings.
type DeezerConfig struct {
	BaseURL        string `toml:"base_url"`
	DefaultLimit   int    `toml:"default_limit"`
	DefaultCountry string `toml:"default_country"`
}

// OutputConfig controls how tables are written.
type OutputConfig struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// Configured reports whether real client credentials are present (the example placeholders don't count).
func (s SpotifyConfig) Configured() bool {
	id := strings.TrimSpace(s.ClientID)
	secret := strings.TrimSpace(s.ClientSecret)
	if id == "" || secret == "" {
		return false
	}
	return !strings.HasPrefix(id, "your_") && !strings.HasPrefix(secret, "your_")
}

// Map returns the credentials in the shape expected by services.NewSpotifyService.
func (s SpotifyConfig) Map() map[string]string {
	m := map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
	}
	if s.TokenURL != "" {
		m["token_url"] = s.TokenURL
	}
	return m
}

// Validate checks values that would otherwise fail later in a less obvious place.
func (c *Config) Validate() error {
	if c.Deezer.DefaultLimit < 0 {
		return fmt.Errorf("%w: deezer.default_limit must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Output.Format {
	case "", "table", "csv", "json", "markdown", "sqlite":
	default:
		return fmt.Errorf("%w: output.format %q", ErrInvalidConfig, c.Output.Format)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys absent from the file keep the values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrMissingConfig, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
