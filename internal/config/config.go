// Package config resolves rpick settings from flags, environment and the
// user's config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. RPICK_MODE=run or
// RPICK_LOG_LEVEL=debug.
const EnvPrefix = "RPICK"

// Config holds the resolved settings for one run.
type Config struct {
	Mode     string
	Prompt   string
	Query    string
	LogFile  string
	LogLevel string
	// Dirs are extra application directories searched before the XDG ones.
	Dirs  []string
	Theme map[string]string
	// File is the config file that was read, if any.
	File string
}

// flag name -> config key
var flagKeys = map[string]string{
	"mode":      "mode",
	"prompt":    "prompt",
	"query":     "query",
	"log-file":  "log.file",
	"log-level": "log.level",
	"dirs":      "dirs",
}

// BindFlags makes flags take precedence over file and environment values.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Dir returns the directory searched for config.yaml / config.toml.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rpick"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rpick"), nil
}

// Load reads configuration into v. An explicit path must exist; without
// one, a missing file in Dir() is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	v.SetDefault("mode", "apps")
	v.SetDefault("log.level", "info")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("config path %q: %w", path, err)
		}
		v.SetConfigFile(expanded)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Mode:     v.GetString("mode"),
		Prompt:   v.GetString("prompt"),
		Query:    v.GetString("query"),
		LogFile:  v.GetString("log.file"),
		LogLevel: v.GetString("log.level"),
		Theme:    v.GetStringMapString("theme"),
		File:     v.ConfigFileUsed(),
	}

	for _, d := range v.GetStringSlice("dirs") {
		expanded, err := homedir.Expand(d)
		if err != nil {
			return nil, fmt.Errorf("dirs entry %q: %w", d, err)
		}
		cfg.Dirs = append(cfg.Dirs, expanded)
	}
	if cfg.LogFile != "" {
		expanded, err := homedir.Expand(cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("log file %q: %w", cfg.LogFile, err)
		}
		cfg.LogFile = expanded
	}

	return cfg, nil
}
