// Package main is the entry point for the lambdeploy CLI.
//
// lambdeploy packages a function's source directory, uploads it to S3, and
// creates or updates the AWS Lambda function. Credentials come from the
// environment, which makes it suitable as a CI pipeline step.
//
// Commands: deploy, validate, package, init.
//
// For detailed usage information, run:
//
//	lambdeploy --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/lambdeploy/cmd/lambdeploy/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
