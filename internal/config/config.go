// Package config loads the dashboard configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissingToken is returned when no GitHub token is configured.
var ErrMissingToken = errors.New("GitHub token is not configured (GITHUB_TOKEN or github.token)")

// Config is the complete dashboard configuration.
type Config struct {
	GitHub GitHubConfig `mapstructure:"github"`
	Server ServerConfig `mapstructure:"server"`
}

// GitHubConfig holds the credentials used against the GitHub API.
type GitHubConfig struct {
	Token string `mapstructure:"token"`
}

// ServerConfig configures the HTTP dashboard.
type ServerConfig struct {
	Addr         string `mapstructure:"addr"`
	DefaultLogin string `mapstructure:"default_login"`
}

// Load reads configuration from path (or ./github-dashboard.yaml when path
// is empty) and from the environment. A missing default file is not an error.
// Environment variables use the GHDASH_ prefix, e.g. GHDASH_SERVER_ADDR;
// GITHUB_TOKEN is accepted for the token.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.default_login", "kevinChang")

	v.SetEnvPrefix("GHDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("github.token", "GHDASH_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("github-dashboard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return ErrMissingToken
	}
	return nil
}
