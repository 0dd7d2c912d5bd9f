package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

//go:embed env.example
var exampleEnv []byte

const (
	defaultHost     = "127.0.0.1"
	defaultPort     = 8000
	defaultTokenDir = "data/tokens"
)

// Config represents the application configuration, sourced from the
// environment with an optional TOML file supplying server and storage
// defaults. Credentials always come from the environment.
type Config struct {
	Spotify SpotifyConfig `toml:"spotify"`
	Server  ServerConfig  `toml:"server"`
	Tokens  TokenConfig   `toml:"tokens"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `env:"SPOTIFY_CLIENT_ID" toml:"-"`
	ClientSecret string `env:"SPOTIFY_CLIENT_SECRET" toml:"-"`
	RedirectURI  string `env:"SPOTIFY_REDIRECT_URI" toml:"-"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `env:"SPOTIFEEL_HOST" toml:"host"`
	Port int    `env:"SPOTIFEEL_PORT" toml:"port"`
}

// TokenConfig contains token storage settings.
type TokenConfig struct {
	Dir string `env:"SPOTIFEEL_TOKEN_DIR" toml:"dir"`
}

// Addr returns the host:port pair the HTTP server binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig builds the configuration from the process environment.
//
// A .env file in the working directory is loaded first when present. When
// tomlPath names an existing TOML file, its values fill settings the
// environment left unset. Validation failures list every missing key.
func LoadConfig(tomlPath string) (*Config, error) {
	_ = godotenv.Load()

	var config Config
	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if tomlPath != "" {
		if data, err := os.ReadFile(tomlPath); err == nil {
			var fileConf Config
			if err := toml.Unmarshal(data, &fileConf); err != nil {
				return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, tomlPath, err)
			}
			config.fillFrom(&fileConf)
		}
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// fillFrom copies values from other into settings the environment left unset.
func (c *Config) fillFrom(other *Config) {
	if c.Server.Host == "" {
		c.Server.Host = other.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = other.Server.Port
	}
	if c.Tokens.Dir == "" {
		c.Tokens.Dir = other.Tokens.Dir
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Tokens.Dir == "" {
		c.Tokens.Dir = defaultTokenDir
	}
}

// Missing returns the names of required environment variables that are unset.
func (c *Config) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.Spotify.ClientID) == "" {
		missing = append(missing, "SPOTIFY_CLIENT_ID")
	}
	if strings.TrimSpace(c.Spotify.ClientSecret) == "" {
		missing = append(missing, "SPOTIFY_CLIENT_SECRET")
	}
	if strings.TrimSpace(c.Spotify.RedirectURI) == "" {
		missing = append(missing, "SPOTIFY_REDIRECT_URI")
	}
	return missing
}

// Validate checks that all required settings are present, reporting every
// missing key in a single error.
func (c *Config) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

// CreateEnvFile writes an example .env file at the specified path.
func CreateEnvFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("env file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleEnv, 0600); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}

	return nil
}
