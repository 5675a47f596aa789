package notescmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/cliui"
	"github.com/hearthhq/hearth/pkg/memory"
)

const setLongDesc string = `Save or replace an answer.

Stores the given text as the answer for the question id. Replacing an
existing answer keeps its creation time and clears any review flag.

Examples:
  hearth notes set user-name "Ada"
  hearth notes set preferred-units metric`

const setShortDesc string = "Save or replace an answer"

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <question-id> <answer>...",
		Short: setShortDesc,
		Long:  setLongDesc,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runSet(cmd, memory.QuestionID(args[0]), strings.Join(args[1:], " "), configDir)
		},
	}

	return cmd
}

func runSet(cmd *cobra.Command, id memory.QuestionID, answer, configDir string) error {
	svc, err := openService(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	metadata := map[string]string{
		memory.MetaSource:      memory.SourceInteractive,
		memory.MetaNeedsReview: "false",
	}

	if err := svc.SaveOrUpdateNote(cmd.Context(), id, answer, metadata); err != nil {
		return fmt.Errorf("saving answer: %w", err)
	}

	fmt.Printf("\n  %s Saved %s\n\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(string(id)),
	)
	return nil
}
