package notescmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/cliui"
	"github.com/hearthhq/hearth/pkg/memory"
)

const clearLongDesc string = `Delete a saved answer.

Removes the answer for the given question id. The question stays in the
catalog and becomes unanswered again. Clearing an already-unanswered
question is a no-op.

Examples:
  hearth notes clear home-address`

const clearShortDesc string = "Delete a saved answer"

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <question-id>",
		Short: clearShortDesc,
		Long:  clearLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runClear(cmd, memory.QuestionID(args[0]), configDir)
		},
	}

	return cmd
}

func runClear(cmd *cobra.Command, id memory.QuestionID, configDir string) error {
	svc, err := openService(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	if err := svc.DeleteNote(cmd.Context(), id); err != nil {
		return fmt.Errorf("clearing answer: %w", err)
	}

	fmt.Printf("\n  %s Cleared %s\n\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(string(id)),
	)
	return nil
}
