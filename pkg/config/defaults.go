package config

import "github.com/hearthhq/hearth/pkg/flow"

const (
	defaultStorageProvider = "file"

	defaultAPIListen = ":8090"
	defaultMCPListen = ":8091"

	defaultEventsPublisher = "none"
	defaultKafkaTopic      = "hearth.memory"

	defaultClientAPITarget = "http://localhost:8090"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Storage: StorageConfig{
			Provider: defaultStorageProvider,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		MCP: MCPConfig{
			Listen: defaultMCPListen,
		},
		Events: EventsConfig{
			Publisher:  defaultEventsPublisher,
			KafkaTopic: defaultKafkaTopic,
		},
		Flow: FlowConfig{
			AckTokens: flow.DefaultAckTokens(),
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
		},
	}
}
