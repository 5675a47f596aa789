package config

import (
	"strings"
)

// Config represents the persistent hearth configuration stored as config.toml
// in the .hearth/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Storage StorageConfig `toml:"storage"`
	API     APIConfig     `toml:"api"`
	MCP     MCPConfig     `toml:"mcp"`
	Events  EventsConfig  `toml:"events"`
	Flow    FlowConfig    `toml:"flow"`
	Client  ClientConfig  `toml:"client"`
}

// StorageConfig selects and parameterizes the persistence substrate.
type StorageConfig struct {
	// Provider is one of file, sqlite, postgres, memory.
	Provider string `toml:"provider,omitempty"`

	// Path overrides the file provider's record location.
	Path string `toml:"path,omitempty"`

	// SQLitePath overrides the sqlite provider's database location.
	SQLitePath string `toml:"sqlite_path,omitempty"`

	// PostgresDSN is the postgres provider's connection string.
	PostgresDSN string `toml:"postgres_dsn,omitempty"`
}

// APIConfig holds REST API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// EventsConfig holds eventstream publisher settings.
type EventsConfig struct {
	// Publisher is one of none, kafka.
	Publisher    string   `toml:"publisher,omitempty"`
	KafkaBrokers []string `toml:"kafka_brokers,omitempty"`
	KafkaTopic   string   `toml:"kafka_topic,omitempty"`
}

// FlowConfig holds question flow settings.
type FlowConfig struct {
	// AckTokens replaces the default acknowledgment allow-list ignored
	// for confirmation-category questions.
	AckTokens []string `toml:"ack_tokens,omitempty"`
}

// ClientConfig holds settings for CLI commands that connect to a running
// hearth serve instance.
type ClientConfig struct {
	APITarget string `toml:"api_target,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"storage.provider": {
		get: func(c *Config) string { return c.Storage.Provider },
		set: func(c *Config, v string) error { c.Storage.Provider = v; return nil },
	},
	"storage.path": {
		get: func(c *Config) string { return c.Storage.Path },
		set: func(c *Config, v string) error { c.Storage.Path = v; return nil },
	},
	"storage.sqlite_path": {
		get: func(c *Config) string { return c.Storage.SQLitePath },
		set: func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	},
	"storage.postgres_dsn": {
		get: func(c *Config) string { return c.Storage.PostgresDSN },
		set: func(c *Config, v string) error { c.Storage.PostgresDSN = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"mcp.listen": {
		get: func(c *Config) string { return c.MCP.Listen },
		set: func(c *Config, v string) error { c.MCP.Listen = v; return nil },
	},
	"events.publisher": {
		get: func(c *Config) string { return c.Events.Publisher },
		set: func(c *Config, v string) error { c.Events.Publisher = v; return nil },
	},
	"events.kafka_brokers": {
		get: func(c *Config) string { return strings.Join(c.Events.KafkaBrokers, ",") },
		set: func(c *Config, v string) error { c.Events.KafkaBrokers = splitList(v); return nil },
	},
	"events.kafka_topic": {
		get: func(c *Config) string { return c.Events.KafkaTopic },
		set: func(c *Config, v string) error { c.Events.KafkaTopic = v; return nil },
	},
	"flow.ack_tokens": {
		get: func(c *Config) string { return strings.Join(c.Flow.AckTokens, ",") },
		set: func(c *Config, v string) error { c.Flow.AckTokens = splitList(v); return nil },
	},
	"client.api_target": {
		get: func(c *Config) string { return c.Client.APITarget },
		set: func(c *Config, v string) error { c.Client.APITarget = v; return nil },
	},
}

// splitList parses a comma-separated config value, dropping empty entries.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
