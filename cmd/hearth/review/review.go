// Package reviewcmder provides the review command: a TUI for auditing saved
// answers and flagging stale ones for re-confirmation.
package reviewcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/storage/provider"
)

const reviewLongDesc string = `Review saved answers in a TUI.

Lists every question with its stored answer. Flag answers that look stale so
the onboarding flow re-asks them, clear answers outright, or just browse.

Keys:
  j/k     move
  f       toggle the review flag on the selected answer
  x       clear the selected answer
  q       quit

Examples:
  hearth review`

const reviewShortDesc string = "Review saved answers in a TUI"

func NewReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: reviewShortDesc,
		Long:  reviewLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runReview(cmd, configDir)
		},
	}

	return cmd
}

func runReview(cmd *cobra.Command, configDir string) error {
	ctx := cmd.Context()

	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg, err := cfger.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := provider.FromConfig(ctx, cfg, configDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	svc, err := memory.NewService(ctx, store)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("opening memory store: %w", err)
	}
	defer func() { _ = svc.Close() }()

	return runReviewTUI(ctx, svc)
}
