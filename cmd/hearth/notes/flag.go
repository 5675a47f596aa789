package notescmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/cliui"
	"github.com/hearthhq/hearth/pkg/memory"
)

const flagLongDesc string = `Mark a saved answer for review.

Flagged answers are re-asked by the onboarding flow and surfaced in
"hearth review". Use --clear to remove the flag instead.

Examples:
  hearth notes flag home-address
  hearth notes flag home-address --clear`

const flagShortDesc string = "Mark a saved answer for review"

func newFlagCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "flag <question-id>",
		Short: flagShortDesc,
		Long:  flagLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runFlag(cmd, memory.QuestionID(args[0]), !clear, configDir)
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the review flag instead of setting it")

	return cmd
}

func runFlag(cmd *cobra.Command, id memory.QuestionID, flagged bool, configDir string) error {
	svc, err := openService(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	if err := svc.SetReviewFlag(cmd.Context(), id, flagged); err != nil {
		return fmt.Errorf("updating review flag: %w", err)
	}

	if flagged {
		fmt.Printf("\n  %s Flagged %s for review\n\n", cliui.SuccessMark, cliui.KeyStyle.Render(string(id)))
	} else {
		fmt.Printf("\n  %s Cleared review flag on %s\n\n", cliui.SuccessMark, cliui.KeyStyle.Render(string(id)))
	}
	return nil
}
