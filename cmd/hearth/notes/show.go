package notescmder

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/cliui"
	"github.com/hearthhq/hearth/pkg/memory"
)

const showLongDesc string = `Show one saved answer with its metadata.

Displays the question text, the stored answer, provenance metadata, and
timestamps for a single question id.

Examples:
  hearth notes show user-name`

const showShortDesc string = "Show one saved answer"

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <question-id>",
		Short: showShortDesc,
		Long:  showLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runShow(cmd, memory.QuestionID(args[0]), configDir)
		},
	}

	return cmd
}

func runShow(cmd *cobra.Command, id memory.QuestionID, configDir string) error {
	svc, err := openService(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	snap := svc.Snapshot()

	q, ok := snap.Question(id)
	if !ok {
		return fmt.Errorf("unknown question: %s", id)
	}

	note := snap.Notes[id]
	if note == nil {
		fmt.Printf("\n  %s %s\n\n",
			cliui.QuestionStyle.Render(q.Text),
			cliui.DimStyle.Render("(unanswered)"),
		)
		return nil
	}

	fmt.Printf("\n  %s\n", cliui.QuestionStyle.Render(q.Text))
	fmt.Printf("  %s %s\n\n", cliui.KeyStyle.Render("Answer:"), cliui.AnswerStyle.Render(note.Answer))

	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Created: "), note.CreatedAt.Format(time.RFC3339))
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Modified:"), note.LastModified.Format(time.RFC3339))

	if len(note.Metadata) > 0 {
		keys := make([]string, 0, len(note.Metadata))
		for k := range note.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Println()
		for _, k := range keys {
			fmt.Printf("  %s %s\n",
				cliui.DimStyle.Render(k+":"),
				cliui.ValueStyle.Render(note.Metadata[k]),
			)
		}
	}

	fmt.Println()
	return nil
}
