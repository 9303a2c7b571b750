// Package cli implements the wayfarer command line tool: offline hours and
// plan lookups against a YAML snapshot, vector verification, and content
// import into Postgres.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion overrides the version printed by --version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// options holds the flags shared by every subcommand.
type options struct {
	json bool
}

// newRootCmd builds a fresh command tree. Tests build their own so flag
// state never leaks between runs.
func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:     "wayfarer",
		Version: version,
		Short:   "City companion: opening hours and day plans",
		Long: `wayfarer answers "is it open right now?" and builds day itineraries
from a snapshot of place content.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Output in JSON format")

	root.AddGroup(
		&cobra.Group{ID: "engines", Title: "Engines:"},
		&cobra.Group{ID: "content", Title: "Content:"},
	)
	root.AddCommand(
		newHoursCmd(opts),
		newPlanCmd(opts),
		newVerifyCmd(opts),
		newImportCmd(),
	)
	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}
