package orchestration

import (
	"context"

	"github.com/imamik/lambdeploy/internal/config"
	"github.com/imamik/lambdeploy/internal/provisioning"
	"github.com/imamik/lambdeploy/internal/provisioning/credentials"
	"github.com/imamik/lambdeploy/internal/provisioning/function"
	"github.com/imamik/lambdeploy/internal/provisioning/packaging"
)

// Reconciler orchestrates the deploy workflow.
type Reconciler struct {
	identity  provisioning.IdentityVerifier
	storage   provisioning.BucketManager
	functions provisioning.FunctionManager
	config    *config.Config
	observer  provisioning.Observer
	metrics   *provisioning.Metrics

	// Phases
	credentialsProvisioner *credentials.Provisioner
	packagingProvisioner   *packaging.Provisioner
	functionProvisioner    *function.Provisioner
}

// NewReconciler creates a new orchestration reconciler.
// Clients that the chosen workflow does not use may be nil.
func NewReconciler(
	identity provisioning.IdentityVerifier,
	storage provisioning.BucketManager,
	functions provisioning.FunctionManager,
	cfg *config.Config,
) *Reconciler {
	return &Reconciler{
		identity:               identity,
		storage:                storage,
		functions:              functions,
		config:                 cfg,
		credentialsProvisioner: credentials.NewProvisioner(),
		packagingProvisioner:   packaging.NewProvisioner(),
		functionProvisioner:    function.NewProvisioner(),
	}
}

// SetObserver replaces the default console observer.
func (r *Reconciler) SetObserver(o provisioning.Observer) {
	r.observer = o
}

// Metrics returns the metrics of the most recent run, or nil before any run.
func (r *Reconciler) Metrics() *provisioning.Metrics {
	return r.metrics
}

// Reconcile runs credentials, package, and deploy.
// The returned state is populated as far as the run got, also on error.
func (r *Reconciler) Reconcile(ctx context.Context) (*provisioning.State, error) {
	return r.run(ctx,
		r.credentialsProvisioner,
		r.packagingProvisioner,
		r.functionProvisioner,
	)
}

// Validate runs only the credential check.
func (r *Reconciler) Validate(ctx context.Context) (*provisioning.State, error) {
	return r.run(ctx, r.credentialsProvisioner)
}

// Package only builds the archive. It makes no remote calls.
func (r *Reconciler) Package(ctx context.Context) (*provisioning.State, error) {
	return r.run(ctx, r.packagingProvisioner)
}

func (r *Reconciler) run(ctx context.Context, phases ...provisioning.Phase) (*provisioning.State, error) {
	pCtx := provisioning.NewContext(ctx, r.config, r.identity, r.storage, r.functions)
	if r.observer != nil {
		pCtx.Observer = r.observer
	}
	pCtx.Observer = pCtx.Observer.WithFields(map[string]string{
		"run_id":   pCtx.State.RunID,
		"function": r.config.Function.Name,
	})
	r.metrics = pCtx.Metrics

	err := provisioning.NewPipeline(phases...).Run(pCtx)
	return pCtx.State, err
}
