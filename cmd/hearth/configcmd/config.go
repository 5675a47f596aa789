// Package configcmder provides the config command for managing persistent
// hearth configuration stored in the .hearth/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent hearth configuration.

Configuration is stored as config.toml in the .hearth/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  storage.provider, storage.path, storage.sqlite_path, storage.postgres_dsn,
  api.listen, mcp.listen,
  events.publisher, events.kafka_brokers, events.kafka_topic,
  flow.ack_tokens,
  client.api_target

Use subcommands to get, set, or list configuration values:
  hearth config set <key> <value>    Set a configuration value
  hearth config get <key>            Get a configuration value
  hearth config list                 List all configuration values

Examples:
  hearth config set storage.provider sqlite
  hearth config set api.listen :8090
  hearth config get storage.provider
  hearth config list`

const configShortDesc string = "Manage persistent hearth configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
