package handlers

import (
	"fmt"

	"github.com/imamik/lambdeploy/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// saveConfig writes the config to a file.
	saveConfig = config.Save
)

// Init writes a starter configuration file.
func Init(outputPath, name string, force bool) error {
	cfg := config.Starter(name)
	if err := saveConfig(cfg, outputPath, force); err != nil {
		return err
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File:     %s\n", outputPath)
	fmt.Fprintf(stdout, "  Function: %s (%s, %s)\n", cfg.Function.Name, cfg.Function.Runtime, cfg.Function.Handler)
	fmt.Fprintf(stdout, "  Bucket:   %s\n", cfg.Bucket)
	fmt.Fprintf(stdout, "  Region:   %s\n", cfg.Region)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Next steps:")
	fmt.Fprintln(stdout, "  1. Set function.role to your execution role ARN")
	fmt.Fprintln(stdout, "  2. Export AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
	fmt.Fprintln(stdout, "  3. Run: lambdeploy validate")
	fmt.Fprintln(stdout, "  4. Run: lambdeploy deploy")
}
