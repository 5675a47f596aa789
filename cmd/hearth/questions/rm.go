package questionscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/cliui"
	"github.com/hearthhq/hearth/pkg/memory"
)

const rmLongDesc string = `Remove a question from the catalog.

Deletes the question and, if answered, its saved answer in the same
operation. Removing an unknown question id is an error.

Examples:
  hearth questions rm morning-briefing`

const rmShortDesc string = "Remove a question from the catalog"

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <question-id>",
		Short: rmShortDesc,
		Long:  rmLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runRm(cmd, memory.QuestionID(args[0]), configDir)
		},
	}

	return cmd
}

func runRm(cmd *cobra.Command, id memory.QuestionID, configDir string) error {
	svc, err := openService(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	if err := svc.DeleteQuestion(cmd.Context(), id); err != nil {
		return fmt.Errorf("removing question: %w", err)
	}

	fmt.Printf("\n  %s Removed %s\n\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(string(id)),
	)
	return nil
}
