// Package onboardcmder provides the onboard command for answering onboarding
// questions interactively.
package onboardcmder

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/address"
	"github.com/hearthhq/hearth/pkg/cliui"
	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/flow"
	"github.com/hearthhq/hearth/pkg/logger"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/profile"
	"github.com/hearthhq/hearth/pkg/storage/provider"
)

var (
	questionPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("hearth> ")
	answerPrompt   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("you> ")
)

const onboardLongDesc string = `Answer onboarding questions interactively.

Walks through unanswered questions one at a time, highest priority first.
Answers are saved immediately; quitting part-way loses nothing, and
re-running resumes from the next unanswered question.

Questions flagged for review are re-asked before new ones. Optional
questions can be skipped with /skip. Where hearth can suggest an answer
(e.g. a previously stored address), press Enter to accept the suggestion.

Examples:
  hearth onboard`

const onboardShortDesc string = "Answer onboarding questions interactively"

type onboardCommander struct {
	debug bool
}

func NewOnboardCmd() *cobra.Command {
	cmder := &onboardCommander{}

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: onboardShortDesc,
		Long:  onboardLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(cmd, configDir)
		},
	}

	return cmd
}

func (c *onboardCommander) run(cmd *cobra.Command, configDir string) error {
	ctx := cmd.Context()

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

	log := logger.New(logger.WithDebug(c.debug), logger.WithPretty(true))

	machine := flow.NewMachine(svc,
		flow.WithProfileStore(profile.NewStore()),
		flow.WithAddressAdapter(address.NewParser()),
		flow.WithAckTokens(cfg.Flow.AckTokens),
		flow.WithLogger(log),
		flow.WithOnComplete(func() {
			fmt.Printf("\n  %s All set. Hearth knows everything it needs.\n\n", cliui.SuccessMark)
		}),
	)

	progress := svc.Progress()
	fmt.Println()
	if progress.Answered > 0 {
		fmt.Printf("  %s Resuming %s\n",
			cliui.SuccessMark,
			cliui.DimStyle.Render(fmt.Sprintf("(%d of %d answered)", progress.Answered, progress.Questions)),
		)
	} else {
		fmt.Printf("  %s Let's get hearth set up.\n", cliui.DimStyle.Render("●"))
	}
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Answer each question and press Enter. /skip to skip, /exit or Ctrl+D to quit."))

	state := machine.Start(ctx)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		waiting, ok := state.(flow.WaitingForAnswer)
		if !ok {
			break
		}

		c.printQuestion(ctx, machine, waiting.Question)

		fmt.Print(answerPrompt)
		if !scanner.Scan() {
			// EOF or error
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "/exit" {
			break
		}
		if input == "/skip" {
			if waiting.Question.Required {
				fmt.Printf("  %s This one is required and cannot be skipped.\n\n", cliui.WarnStyle.Render("!"))
				continue
			}
			state = machine.Skip(ctx)
			fmt.Println()
			continue
		}

		// Empty input accepts the suggestion when one exists.
		if input == "" {
			suggestion := machine.Suggestion(ctx)
			if suggestion == "" {
				continue
			}
			input = suggestion
		}

		state = machine.ProcessInput(ctx, input)
		fmt.Println()

		if failed, ok := state.(flow.Failed); ok {
			return fmt.Errorf("saving answer: %s", failed.Message)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if _, done := state.(flow.Completed); !done {
		fmt.Printf("  %s Progress saved. Run %s to pick up where you left off.\n\n",
			cliui.DimStyle.Render("●"),
			cliui.KeyStyle.Render("hearth onboard"),
		)
	}

	return nil
}

// printQuestion renders the question line plus any suggestion hint.
func (c *onboardCommander) printQuestion(ctx context.Context, machine *flow.Machine, q memory.Question) {
	fmt.Printf("%s%s", questionPrompt, cliui.QuestionStyle.Render(q.Text))
	if !q.Required {
		fmt.Printf(" %s", cliui.DimStyle.Render("(optional, /skip to skip)"))
	}
	fmt.Println()

	if suggestion := machine.Suggestion(ctx); suggestion != "" {
		fmt.Printf("  %s %s\n",
			cliui.DimStyle.Render("Suggestion (press Enter to accept):"),
			cliui.AnswerStyle.Render(suggestion),
		)
	}
}
