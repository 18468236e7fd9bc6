// Package config loads cloudspark settings from
// ~/.config/cloudspark/config.toml with CLOUDSPARK_* environment overrides.
// The file stores only local caller preferences (credentials, region, default
// bucket); the storage service is the source of truth for all resource state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds caller settings from config.toml or the environment.
// All fields use flat snake_case TOML keys.
type Config struct {
	AccessKey    string `mapstructure:"access_key"    toml:"access_key"`
	SecretKey    string `mapstructure:"secret_key"    toml:"secret_key"`
	SessionToken string `mapstructure:"session_token" toml:"session_token"`
	Region       string `mapstructure:"region"        toml:"region"`
	Bucket       string `mapstructure:"bucket"        toml:"bucket"`

	// SessionDurationSeconds is the default lifetime requested when minting
	// temporary credentials. The service enforces its own accepted range.
	SessionDurationSeconds int `mapstructure:"session_duration_seconds" toml:"session_duration_seconds"`
}

// DefaultConfigDir returns the default config directory path
// (~/.config/cloudspark). If CLOUDSPARK_CONFIG_DIR is set, that value is
// used instead.
func DefaultConfigDir() string {
	if dir := os.Getenv("CLOUDSPARK_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "cloudspark")
	}
	return filepath.Join(home, ".config", "cloudspark")
}

// Load reads the config file from configDir/config.toml and returns a Config
// with defaults applied for any missing keys. If the file does not exist,
// defaults (and any CLOUDSPARK_* environment values) are returned without
// error. Environment variables take precedence over file values, e.g.
// CLOUDSPARK_ACCESS_KEY overrides access_key.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("CLOUDSPARK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("access_key", "")
	v.SetDefault("secret_key", "")
	v.SetDefault("session_token", "")
	v.SetDefault("region", "")
	v.SetDefault("bucket", "")
	v.SetDefault("session_duration_seconds", 3600)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to configDir/config.toml, creating the directory
// if it does not exist. The file is chmod 0600 since it carries secrets.
func Save(cfg *Config, configDir string) error {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.Set("access_key", cfg.AccessKey)
	v.Set("secret_key", cfg.SecretKey)
	v.Set("session_token", cfg.SessionToken)
	v.Set("region", cfg.Region)
	v.Set("bucket", cfg.Bucket)
	v.Set("session_duration_seconds", cfg.SessionDurationSeconds)

	path := filepath.Join(configDir, "config.toml")
	if err := v.WriteConfigAs(path); err != nil {
		return err
	}
	return os.Chmod(path, 0o600)
}
