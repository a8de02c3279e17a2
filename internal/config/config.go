package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// RepoPath is the dotfiles repository to open. Empty on first run.
	RepoPath string `mapstructure:"repo_path"`
	// RemoteURL is the origin remote, recorded after it is first added.
	RemoteURL string `mapstructure:"remote_url"`
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// MaxLogEntries is the number of log entries to load.
	MaxLogEntries int `mapstructure:"max_log_entries"`

	v *viper.Viper
}

// Load reads configuration from ~/.config/dotatui/config.yaml, falling
// back to defaults when no file exists yet.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir := Directory()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("DOTATUI")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine — use defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the current values back to the config file, creating the
// directory on first run.
func (c *Config) Save() error {
	dir := Directory()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	c.v.Set("repo_path", c.RepoPath)
	c.v.Set("remote_url", c.RemoteURL)
	c.v.Set("theme", c.Theme)
	c.v.Set("max_log_entries", c.MaxLogEntries)
	return c.v.WriteConfigAs(filepath.Join(dir, "config.yaml"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("repo_path", "")
	v.SetDefault("remote_url", "")
	v.SetDefault("theme", "dark")
	v.SetDefault("max_log_entries", 200)
}

// Directory returns the configuration directory, honoring
// XDG_CONFIG_HOME.
func Directory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dotatui")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dotatui")
}
