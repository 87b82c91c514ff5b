package function

import (
	"fmt"

	"github.com/imamik/lambdeploy/internal/platform/lambda"
	"github.com/imamik/lambdeploy/internal/provisioning"
)

// ReconcileFunction creates the function if it is absent or updates its code
// if it is present. A failed existence query stops here with neither call made.
func (p *Provisioner) ReconcileFunction(ctx *provisioning.Context) error {
	name := ctx.Config.Function.Name

	lookup := provisioning.LookupFunction(ctx, name)
	ctx.State.Lookup = lookup.Status

	var (
		fn      *lambda.Function
		outcome provisioning.Outcome
		err     error
	)
	switch lookup.Status {
	case provisioning.LookupAbsent:
		fn, outcome, err = createFunction(ctx)
	case provisioning.LookupPresent:
		fn, outcome, err = updateFunction(ctx)
	default:
		outcome = provisioning.OutcomeFailed
		err = fmt.Errorf("%w for %s: %w", ErrFunctionQueryFailed, name, lookup.Err)
	}

	ctx.State.FunctionOutcome = outcome
	ctx.Metrics.ObserveOutcome("function", outcome)
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phase, "function", name, err)
		return err
	}
	ctx.State.Function = fn
	return nil
}

func createFunction(ctx *provisioning.Context) (*lambda.Function, provisioning.Outcome, error) {
	cfg := ctx.Config
	art := ctx.State.Artifact

	provisioning.LogResourceCreating(ctx.Observer, phase, "function", cfg.Function.Name)
	fn, err := ctx.Functions.CreateFunction(ctx, lambda.CreateSpec{
		Name:         cfg.Function.Name,
		Runtime:      cfg.Function.Runtime,
		Handler:      cfg.Function.Handler,
		Description:  cfg.Function.Description,
		Role:         cfg.Function.Role,
		MemorySize:   cfg.Function.MemorySize,
		Timeout:      cfg.Function.Timeout,
		Architecture: cfg.Function.Architecture,
		Environment:  cfg.Function.Environment,
		Bucket:       cfg.Bucket,
		Key:          art.Name,
	})
	if err != nil {
		return nil, provisioning.OutcomeFailed, err
	}

	provisioning.LogResourceCreated(ctx.Observer, phase, "function", fn.Name, fn.Version)
	return fn, provisioning.OutcomeCreated, nil
}

func updateFunction(ctx *provisioning.Context) (*lambda.Function, provisioning.Outcome, error) {
	cfg := ctx.Config
	art := ctx.State.Artifact

	provisioning.LogResourceUpdating(ctx.Observer, phase, "function", cfg.Function.Name)
	fn, err := ctx.Functions.UpdateFunctionCode(ctx, cfg.Function.Name, cfg.Bucket, art.Name)
	if err != nil {
		return nil, provisioning.OutcomeFailed, err
	}

	provisioning.LogResourceUpdated(ctx.Observer, phase, "function", fn.Name, fn.Version)
	return fn, provisioning.OutcomeUpdated, nil
}
