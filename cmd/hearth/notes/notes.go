// Package notescmder provides the notes command for inspecting and editing
// saved answers directly, outside the interactive onboarding flow.
package notescmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/storage/provider"
)

const notesLongDesc string = `Inspect and edit saved answers.

Notes are the answers stored against catalog questions. Use subcommands to
list, show, set, clear, or flag them:
  hearth notes list                       List all saved answers
  hearth notes show <question-id>         Show one answer with metadata
  hearth notes set <question-id> <text>   Save or replace an answer
  hearth notes clear <question-id>        Delete an answer
  hearth notes flag <question-id>         Mark an answer for review

Examples:
  hearth notes list
  hearth notes set user-name "Ada"
  hearth notes flag home-address`

const notesShortDesc string = "Inspect and edit saved answers"

func NewNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: notesShortDesc,
		Long:  notesLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newClearCmd())
	cmd.AddCommand(newFlagCmd())

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
