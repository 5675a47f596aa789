// Package resetcmder provides the reset command for restoring the question
// catalog or wiping stored answers.
package resetcmder

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/cliui"
	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/storage/provider"
)

const resetLongDesc string = `Reset the memory store.

With --defaults, restores the default question catalog. Answers to questions
that survive the reset are kept; answers to removed questions are dropped.

With --answers, deletes every saved answer, keeping the question catalog.
This cannot be undone and asks for confirmation unless --yes is given.

Examples:
  hearth reset --defaults
  hearth reset --answers
  hearth reset --answers --yes`

const resetShortDesc string = "Reset the memory store"

type resetCommander struct {
	defaults bool
	answers  bool
	yes      bool
}

func NewResetCmd() *cobra.Command {
	cmder := &resetCommander{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: resetShortDesc,
		Long:  resetLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmder.defaults && !cmder.answers {
				return fmt.Errorf("nothing to do: pass --defaults or --answers")
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(cmd, configDir)
		},
	}

	cmd.Flags().BoolVar(&cmder.defaults, "defaults", false, "Restore the default question catalog, keeping surviving answers")
	cmd.Flags().BoolVar(&cmder.answers, "answers", false, "Delete all saved answers, keeping the catalog")
	cmd.Flags().BoolVarP(&cmder.yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (c *resetCommander) run(cmd *cobra.Command, configDir string) error {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg, err := cfger.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := provider.FromConfig(cmd.Context(), cfg, configDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	svc, err := memory.NewService(cmd.Context(), store)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("opening memory store: %w", err)
	}
	defer func() { _ = svc.Close() }()

	if c.answers {
		if !c.yes && !confirm("Delete ALL saved answers? This cannot be undone. [y/N] ") {
			fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("Aborted."))
			return nil
		}

		if err := svc.ClearAllData(cmd.Context()); err != nil {
			return fmt.Errorf("clearing answers: %w", err)
		}

		fmt.Printf("\n  %s Cleared all answers\n\n", cliui.SuccessMark)
		return nil
	}

	if err := svc.ResetToDefaults(cmd.Context()); err != nil {
		return fmt.Errorf("restoring defaults: %w", err)
	}

	fmt.Printf("\n  %s Restored the default question catalog\n\n", cliui.SuccessMark)
	return nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
