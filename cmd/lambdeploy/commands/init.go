package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/lambdeploy/cmd/lambdeploy/handlers"
)

// Init returns the command for writing a starter configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "lambdeploy.yaml")
//	--name: Function name (default "my-function")
//	--force: Overwrite an existing file
func Init() *cobra.Command {
	var (
		outputPath string
		name       string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration",
		Long: `Write a starter lambdeploy.yaml.

The file holds the function settings and the bucket. Credentials
are never written to it; they are read from the environment.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Init(outputPath, name, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "lambdeploy.yaml", "Output file path")
	cmd.Flags().StringVar(&name, "name", "", "Function name")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
