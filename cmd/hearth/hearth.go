// Package hearthcmder
package hearthcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/hearthhq/hearth/cmd/hearth/configcmd"
	initcmder "github.com/hearthhq/hearth/cmd/hearth/initcmd"
	notescmder "github.com/hearthhq/hearth/cmd/hearth/notes"
	onboardcmder "github.com/hearthhq/hearth/cmd/hearth/onboard"
	questionscmder "github.com/hearthhq/hearth/cmd/hearth/questions"
	resetcmder "github.com/hearthhq/hearth/cmd/hearth/reset"
	reviewcmder "github.com/hearthhq/hearth/cmd/hearth/review"
	servecmder "github.com/hearthhq/hearth/cmd/hearth/serve"
	statuscmder "github.com/hearthhq/hearth/cmd/hearth/status"
	versioncmder "github.com/hearthhq/hearth/cmd/hearth/version"
)

const hearthLongDesc string = `Hearth is a persistent memory layer for your home assistant.

It keeps a catalog of onboarding questions and the user's answers,
serves them over an HTTP API and MCP, and walks the user through
unanswered questions one at a time.

Get started:
  hearth onboard       Answer onboarding questions interactively
  hearth status        Show onboarding progress
  hearth serve         Run the API and MCP servers`

const hearthShortDesc string = "Hearth - Assistant Memory"

func NewHearthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hearth",
		Short: hearthShortDesc,
		Long:  hearthLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the config directory (default: .hearth/ or ~/.hearth/)")

	// Add subcommands
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(onboardcmder.NewOnboardCmd())
	cmd.AddCommand(reviewcmder.NewReviewCmd())
	cmd.AddCommand(statuscmder.NewStatusCmd())
	cmd.AddCommand(notescmder.NewNotesCmd())
	cmd.AddCommand(questionscmder.NewQuestionsCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(resetcmder.NewResetCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
