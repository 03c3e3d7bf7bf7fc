package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoaderOptions describes how configuration should be discovered.
type LoaderOptions struct {
	ConfigPaths []string
	FileName    string
	EnvPrefix   string
}

// Load returns the merged configuration from files and environment
// variables.
func Load(opts LoaderOptions) (Config, error) {
	v := viper.New()

	name := opts.FileName
	if name == "" {
		name = "geminichat"
	}

	configFile := locateConfigFile(name, opts.ConfigPaths)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(name)
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = "GEMINI"
	}
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AllowEmptyEnv(true)

	setDefaults(v)

	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return expandEnvVars(cfg), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.baseURL", "https://generativelanguage.googleapis.com")
	v.SetDefault("api.model", "gemini-1.5-flash")
	v.SetDefault("api.key", "")
	v.SetDefault("api.timeout", "60s")
	v.SetDefault("observability.logging.enabled", true)
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "human")
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("store.enabled", false)
	v.SetDefault("store.path", defaultStorePath())
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "geminichat.db"
	}
	return filepath.Join(home, ".geminichat", "history.db")
}

// locateConfigFile finds the first matching config file in the search
// paths, trying yaml then yml extensions.
func locateConfigFile(name string, paths []string) string {
	for _, dir := range paths {
		for _, ext := range []string{"yaml", "yml"} {
			candidate := filepath.Join(dir, name+"."+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
	}
	return ""
}

// expandEnvVars expands ${VAR} and $VAR syntax in configuration strings,
// so API keys can live in the environment rather than the config file.
func expandEnvVars(cfg Config) Config {
	cfg.API.BaseURL = os.ExpandEnv(cfg.API.BaseURL)
	cfg.API.Model = os.ExpandEnv(cfg.API.Model)
	cfg.API.Key = os.ExpandEnv(cfg.API.Key)
	cfg.API.Timeout = os.ExpandEnv(cfg.API.Timeout)
	cfg.Store.Path = os.ExpandEnv(cfg.Store.Path)
	return cfg
}
