// Package questionscmder provides the questions command for managing the
// question catalog.
package questionscmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/storage/provider"
)

const questionsLongDesc string = `Manage the question catalog.

The catalog holds every question the onboarding flow can ask, in priority
order. Use subcommands to list, add, or remove questions:
  hearth questions list           List the catalog in presentation order
  hearth questions add <text>     Add a question
  hearth questions rm <id>        Remove a question and its answer

Examples:
  hearth questions list
  hearth questions add "What time do you usually wake up?" --category preferences
  hearth questions rm morning-briefing`

const questionsShortDesc string = "Manage the question catalog"

func NewQuestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: questionsShortDesc,
		Long:  questionsLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRmCmd())

	return cmd
}

// openService builds the memory service from the resolved config. Callers own
// the returned service and must Close it.
func openService(ctx context.Context, configDir string) (*memory.Service, error) {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg, err := cfger.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := provider.FromConfig(ctx, cfg, configDir)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	svc, err := memory.NewService(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("opening memory store: %w", err)
	}

	return svc, nil
}
