package config

import "fmt"

// Config represents the full application configuration.
type Config struct {
	API           APIConfig           `yaml:"api"`
	Observability ObservabilityConfig `yaml:"observability"`
	Store         StoreConfig         `yaml:"store"`
}

// APIConfig configures the Gemini endpoint.
type APIConfig struct {
	BaseURL string `yaml:"baseURL"`
	Model   string `yaml:"model"`
	Key     string `yaml:"key"`
	Timeout string `yaml:"timeout"`
}

// Endpoint returns the generateContent URL for the configured model,
// without the API key. The key is attached separately at request build
// time so it never appears in config dumps or debug output.
func (a APIConfig) Endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.BaseURL, a.Model)
}

// ObservabilityConfig configures diagnostic logging and metrics.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`  // debug, info, error
	Format  string `yaml:"format"` // json, human
}

// MetricsConfig configures in-memory call statistics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StoreConfig configures the transcript persistence layer.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}
