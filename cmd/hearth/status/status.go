// Package statuscmder provides the status command for displaying onboarding
// progress from the memory store.
package statuscmder

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/cliui"
	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/storage/provider"
)

const statusLongDesc string = `Show onboarding progress.

Reads the memory store and displays how many questions have been answered,
broken down by category, plus any answers flagged for review.

Examples:
  hearth status`

const statusShortDesc string = "Show onboarding progress"

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: statusShortDesc,
		Long:  statusLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runStatus(cmd.Context(), configDir)
		},
	}

	return cmd
}

func runStatus(ctx context.Context, configDir string) error {
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

	progress := svc.Progress()

	rendered, err := cliui.RenderMarkdown(progressMarkdown(progress))
	if err != nil {
		return fmt.Errorf("rendering status: %w", err)
	}
	fmt.Print(rendered)

	if next := svc.CurrentQuestion(); next != nil {
		fmt.Printf("  %s %s\n\n",
			cliui.KeyStyle.Render("Next up:"),
			cliui.QuestionStyle.Render(next.Text),
		)
	}

	return nil
}

// progressMarkdown builds the markdown status report rendered via glamour.
func progressMarkdown(p memory.Progress) string {
	var b strings.Builder

	b.WriteString("# Hearth Onboarding\n\n")

	if p.Complete {
		b.WriteString("All required questions answered.\n\n")
	} else {
		b.WriteString(fmt.Sprintf("%d of %d required questions answered.\n\n",
			p.RequiredAnswered, p.Required))
	}

	b.WriteString(fmt.Sprintf("- Questions: **%d**\n", p.Questions))
	b.WriteString(fmt.Sprintf("- Answered: **%d**\n", p.Answered))
	if p.NeedsReview > 0 {
		b.WriteString(fmt.Sprintf("- Flagged for review: **%d**\n", p.NeedsReview))
	}
	b.WriteString("\n## By category\n\n")

	for _, category := range []memory.Category{
		memory.CategoryPersonal,
		memory.CategoryLocation,
		memory.CategoryHouse,
		memory.CategoryPreferences,
		memory.CategoryConfirmation,
		memory.CategoryOther,
	} {
		cp, ok := p.ByCategory[category]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: %d/%d\n", category, cp.Answered, cp.Questions))
	}

	return b.String()
}
