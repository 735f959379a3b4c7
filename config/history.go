package config

import "fmt"

// HistoryConfig defines settings for substitution history storage.
type HistoryConfig struct {
	// Backend selects the history store type: "memory" or "sqlite".
	Backend string `json:"backend"`
	// Path is the database location for the sqlite backend.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *HistoryConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Backend == "sqlite" && c.Path == "" {
		c.Path = "history.db"
	}
}

// Validate checks mandatory fields.
func (c HistoryConfig) Validate() error {
	if c.Backend != "memory" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown history backend %s", c.Backend)
	}
	if c.Backend == "sqlite" && c.Path == "" {
		return fmt.Errorf("history path is required for sqlite backend")
	}
	return nil
}
