package notescmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/cliui"
	"github.com/hearthhq/hearth/pkg/utils"
)

const listLongDesc string = `List all saved answers.

Shows every answered question with a preview of the stored answer, in the
order questions are presented.

Examples:
  hearth notes list`

const listShortDesc string = "List all saved answers"

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runList(cmd, configDir)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command, configDir string) error {
	svc, err := openService(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	snap := svc.Snapshot()

	answered := 0
	fmt.Println()
	for _, q := range snap.SortedQuestions() {
		note, ok := snap.Notes[q.ID]
		if !ok {
			continue
		}
		answered++

		marker := " "
		if note.NeedsReview() {
			marker = cliui.WarnStyle.Render("!")
		}

		fmt.Printf("  %s %s  %s\n",
			marker,
			cliui.KeyStyle.Render(string(q.ID)),
			cliui.AnswerStyle.Render(utils.Truncate(note.Answer, 64)),
		)
	}

	if answered == 0 {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("No answers saved yet. Run \"hearth onboard\" to get started."))
	}
	fmt.Println()

	return nil
}
