// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"

	"github.com/imamik/lambdeploy/internal/config"
	"github.com/imamik/lambdeploy/internal/orchestration"
	"github.com/imamik/lambdeploy/internal/platform/awsconfig"
	"github.com/imamik/lambdeploy/internal/platform/lambda"
	"github.com/imamik/lambdeploy/internal/platform/s3"
	"github.com/imamik/lambdeploy/internal/platform/sts"
	"github.com/imamik/lambdeploy/internal/provisioning"
	"github.com/imamik/lambdeploy/internal/ui/report"
)

// Reconciler interface for testing - matches orchestration.Reconciler.
type Reconciler interface {
	Reconcile(ctx context.Context) (*provisioning.State, error)
	Validate(ctx context.Context) (*provisioning.State, error)
	Package(ctx context.Context) (*provisioning.State, error)
	SetObserver(o provisioning.Observer)
	Metrics() *provisioning.Metrics
}

// Clients bundles the platform clients a run needs.
type Clients struct {
	Identity  provisioning.IdentityVerifier
	Storage   provisioning.BucketManager
	Functions provisioning.FunctionManager
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadAWSConfig resolves the shared AWS config.
	loadAWSConfig = awsconfig.Load

	// newClients creates the platform clients from an AWS config.
	newClients = func(cfg aws.Config) Clients {
		return Clients{
			Identity:  sts.NewClient(cfg),
			Storage:   s3.NewClient(cfg),
			Functions: lambda.NewClient(cfg),
		}
	}

	// newReconciler creates a new deploy reconciler.
	newReconciler = func(c Clients, cfg *config.Config) Reconciler {
		return orchestration.NewReconciler(c.Identity, c.Storage, c.Functions, cfg)
	}

	// stdout receives reports.
	stdout io.Writer = os.Stdout

	// isInteractive reports whether reports may use colors.
	isInteractive = func() bool { return report.IsInteractive(os.Stdout) }
)

// DeployOptions holds the flags of the deploy command.
type DeployOptions struct {
	ConfigOptions
	MetricsFile string
	JSON        bool
}

// Deploy validates credentials, packages the source, and creates or updates
// the function.
//
// The workflow is:
//  1. Resolve configuration from file, environment and flags, then validate it
//  2. Build AWS clients from the injected credentials
//  3. Run credentials, package and deploy phases in order
//  4. Write metrics (if requested) and print the summary
//
// Any phase failure stops the run. Nothing is rolled back.
func Deploy(ctx context.Context, opts DeployOptions) error {
	cfg, err := loadConfig(opts.ConfigOptions)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function": cfg.Function.Name,
		"bucket":   cfg.Bucket,
		"region":   cfg.Region,
	}).Info("Deploying function")

	clients, err := initializeClients(ctx, cfg)
	if err != nil {
		return err
	}

	r := newReconciler(clients, cfg)
	recorder := provisioning.NewRecordingObserver(provisioning.NewConsoleObserver(logrus.StandardLogger()))
	r.SetObserver(recorder)

	state, runErr := r.Reconcile(ctx)

	if opts.MetricsFile != "" {
		if err := writeMetrics(r.Metrics(), opts.MetricsFile); err != nil {
			logrus.WithError(err).Warn("Failed to write metrics")
		}
	}

	if err := printResult("lambdeploy deploy "+cfg.Function.Name, state, recorder, runErr, opts.JSON); err != nil {
		return err
	}
	return runErr
}

// initializeClients builds the platform clients from the resolved config.
func initializeClients(ctx context.Context, cfg *config.Config) (Clients, error) {
	awsCfg, err := loadAWSConfig(ctx, awsconfig.Options{
		Region:          cfg.Region,
		AccessKeyID:     cfg.Credentials.AccessKeyID,
		SecretAccessKey: cfg.Credentials.SecretAccessKey,
		SessionToken:    cfg.Credentials.SessionToken,
		Endpoint:        cfg.Endpoint,
	})
	if err != nil {
		return Clients{}, err
	}
	return newClients(awsCfg), nil
}

func writeMetrics(m *provisioning.Metrics, path string) error {
	if m == nil {
		return fmt.Errorf("no metrics recorded")
	}
	return m.WriteTextfile(path)
}

func printResult(title string, state *provisioning.State, recorder *provisioning.RecordingObserver, runErr error, asJSON bool) error {
	if asJSON {
		return report.WriteJSON(stdout, state, recorder.Events(), runErr)
	}
	report.NewPrinter(stdout, isInteractive()).Summary(title, state, runErr)
	return nil
}
