// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/lambdeploy/cmd/lambdeploy/handlers"
)

// Root returns the root command for the lambdeploy CLI.
//
// The root command owns the logging flags shared by every subcommand.
func Root() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:           "lambdeploy",
		Short:         "Package and deploy AWS Lambda functions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return handlers.ConfigureLogging(logLevel, logFormat)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	// Core commands
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Package())
	cmd.AddCommand(Init())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// addConfigFlags binds the flags every config-reading command shares.
func addConfigFlags(cmd *cobra.Command, opts *handlers.ConfigOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: lambdeploy.yaml)")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", "", "Load environment variables from a .env file")
}
