package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/lambdeploy/cmd/lambdeploy/handlers"
)

// Validate returns the command that only checks credentials.
func Validate() *cobra.Command {
	var (
		opts   handlers.ConfigOptions
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Verify the credentials",
		Long: `Resolve the caller identity of the configured credentials.

Nothing is packaged or changed. Use this as a first pipeline step
to fail fast on missing or expired credentials.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Validate(cmd.Context(), opts, asJSON)
		},
	}

	addConfigFlags(cmd, &opts)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}
