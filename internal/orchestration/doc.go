// Package orchestration provides high-level workflow coordination for a deploy run.
//
// This package delegates to the phases in the internal/provisioning
// subpackages. It defines the execution order and owns the state that flows
// between phases.
//
// # Workflow
//
// The Reconciler executes the following phases in order:
//  1. Credentials - caller identity check, fatal on failure
//  2. Package - source directory to <function>.zip
//  3. Deploy - bucket, upload, create or update the function
//
// # Usage
//
//	reconciler := orchestration.NewReconciler(stsClient, s3Client, lambdaClient, cfg)
//	state, err := reconciler.Reconcile(ctx)
//
// Runs are idempotent: a second run with the same source updates the function
// code instead of creating it again.
package orchestration
