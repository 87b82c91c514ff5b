package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/lambdeploy/cmd/lambdeploy/handlers"
)

// Package returns the command that only builds the archive.
func Package() *cobra.Command {
	var (
		opts   handlers.ConfigOptions
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Build the deployment archive",
		Long: `Zip the source directory into <function>.zip without deploying.

No credentials are needed and no remote calls are made.

Examples:
  lambdeploy package --source ./src --output ./dist`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Package(cmd.Context(), opts, asJSON)
		},
	}

	addConfigFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.Source, "source", "", "Directory to package")
	cmd.Flags().StringVarP(&opts.WorkDir, "output", "o", "", "Directory to write the archive to")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}
