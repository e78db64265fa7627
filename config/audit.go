package config

import "fmt"

// AuditConfig defines settings for the evaluation audit log.
type AuditConfig struct {
	Enabled bool `json:"enabled"`
	// Path is the file location of the JSONL store.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in
	// megabytes. Zero disables rotation.
	MaxSizeMB int `json:"max_size_mb"`
}

// SetDefaults applies sane defaults.
func (c *AuditConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "evaluations.jsonl"
	}
}

// Validate checks mandatory fields.
func (c AuditConfig) Validate() error {
	if c.Enabled && c.Path == "" {
		return fmt.Errorf("audit path is required")
	}
	if c.MaxSizeMB < 0 {
		return fmt.Errorf("max_size_mb must not be negative")
	}
	return nil
}

// APIConfig defines settings for the HTTP evaluation endpoint.
type APIConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
