package questionscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/cliui"
)

const listLongDesc string = `List the question catalog.

Shows every question in presentation order (priority, then display order),
marking which ones already have answers.

Examples:
  hearth questions list`

const listShortDesc string = "List the question catalog"

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

	fmt.Println()
	for _, q := range snap.SortedQuestions() {
		mark := cliui.DimStyle.Render("○")
		if _, answered := snap.Notes[q.ID]; answered {
			mark = cliui.SuccessMark
		}

		required := ""
		if q.Required {
			required = cliui.WarnStyle.Render(" (required)")
		}

		fmt.Printf("  %s %s %s%s\n",
			mark,
			cliui.KeyStyle.Render(fmt.Sprintf("%-20s", string(q.ID))),
			cliui.QuestionStyle.Render(q.Text),
			required,
		)
		fmt.Printf("      %s\n", cliui.DimStyle.Render(fmt.Sprintf("%s priority, %s", q.Priority, q.Category)))
	}
	fmt.Println()

	return nil
}
