package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/lambdeploy/cmd/lambdeploy/handlers"
)

// Deploy returns the command that runs the full pipeline.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect lambdeploy.yaml)
//	--env-file: .env file to load before reading the environment
//	--source: Directory to package (overrides source / SOURCE_DIR)
//	--wait: Wait until the function has settled
//	--keep-artifact: Keep the local archive after upload
//	--metrics-file: Write run metrics in Prometheus text format
//	--json: Print the result as JSON
//
// Environment variables:
//
//	AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY: credentials (required)
//	AWS_SESSION_TOKEN: session token for temporary credentials
func Deploy() *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create or update the function",
		Long: `Package the source directory and deploy it to AWS Lambda.

The run has three stages:
  1. Verify the credentials (fatal on failure)
  2. Zip the source directory into <function>.zip
  3. Ensure the bucket, upload the archive, then create the function
     if it does not exist or update its code if it does

Configuration comes from lambdeploy.yaml (optional), the environment,
and flags, in increasing precedence.

Examples:
  # Deploy using lambdeploy.yaml and credentials from the environment
  lambdeploy deploy

  # Deploy with everything from the environment
  FUNCTION_NAME=demoFn BUCKET_NAME=demo-artifacts ROLE_ARN=... lambdeploy deploy

  # Wait for the update to finish and keep the archive
  lambdeploy deploy --wait --keep-artifact`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), opts)
		},
	}

	addConfigFlags(cmd, &opts.ConfigOptions)
	cmd.Flags().StringVar(&opts.Source, "source", "", "Directory to package")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "Wait until the function is active")
	cmd.Flags().BoolVar(&opts.KeepArtifact, "keep-artifact", false, "Keep the local archive after upload")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics to this file")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the result as JSON")

	return cmd
}
