package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the root service configuration.
type Config struct {
	API     APIConfig     `json:"api"`
	Metrics MetricsConfig `json:"metrics"`
	History HistoryConfig `json:"history"`
	Roster  RosterConfig  `json:"roster"`
}

// APIConfig holds the HTTP listener settings.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":9090"
	}
}

// RosterConfig points at the staff and timetable seed file.
type RosterConfig struct {
	Path string `json:"path"`
}

// Load reads the configuration file at path. YAML and JSON are supported;
// environment variables prefixed with SUBPLAN_ override file values, with
// "__" separating nested keys.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("SUBPLAN_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "subplan_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.API.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.History.SetDefaults()
	if err := cfg.History.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
