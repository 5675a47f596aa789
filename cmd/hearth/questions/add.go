package questionscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/cliui"
	"github.com/hearthhq/hearth/pkg/memory"
)

const addLongDesc string = `Add a question to the catalog.

The new question gets a generated id and is asked by the onboarding flow
according to its priority and display order. Adding a question whose text
already exists in the catalog is an error.

Categories: personal, location, house, preferences, confirmation, other
Priorities: high, medium, low

Examples:
  hearth questions add "What time do you usually wake up?"
  hearth questions add "Any pets?" --category house --priority low
  hearth questions add "What is your wifi network name?" --required`

const addShortDesc string = "Add a question to the catalog"

func newAddCmd() *cobra.Command {
	var (
		category     string
		priority     string
		required     bool
		displayOrder int
	)

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: addShortDesc,
		Long:  addLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			q := memory.NewQuestion(
				args[0],
				memory.Category(category),
				memory.Priority(priority),
				required,
				displayOrder,
			)
			return runAdd(cmd, q, configDir)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(memory.CategoryOther), "Question category")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(memory.PriorityMedium), "Question priority (high, medium, low)")
	cmd.Flags().BoolVarP(&required, "required", "r", false, "Block onboarding completion until answered")
	cmd.Flags().IntVar(&displayOrder, "order", 100, "Display order within the same priority")

	return cmd
}

func runAdd(cmd *cobra.Command, q memory.Question, configDir string) error {
	svc, err := openService(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	if err := svc.AddQuestion(cmd.Context(), q); err != nil {
		return fmt.Errorf("adding question: %w", err)
	}

	fmt.Printf("\n  %s Added %s\n  %s\n\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(string(q.ID)),
		cliui.QuestionStyle.Render(q.Text),
	)
	return nil
}
