package function

import (
	"fmt"

	"github.com/imamik/lambdeploy/internal/provisioning"
)

// EnsureBucket makes sure the artifact bucket exists.
// An existing bucket is never touched.
func (p *Provisioner) EnsureBucket(ctx *provisioning.Context) error {
	outcome, err := ensureBucket(ctx, ctx.Config.Bucket)
	ctx.State.BucketOutcome = outcome
	ctx.Metrics.ObserveOutcome("bucket", outcome)
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phase, "bucket", ctx.Config.Bucket, err)
		return err
	}
	return nil
}

func ensureBucket(ctx *provisioning.Context, name string) (provisioning.Outcome, error) {
	exists, err := ctx.Storage.BucketExists(ctx, name)
	if err != nil {
		return provisioning.OutcomeFailed, fmt.Errorf("failed to check bucket %s: %w", name, err)
	}
	if exists {
		provisioning.LogResourceExists(ctx.Observer, phase, "bucket", name, name)
		return provisioning.OutcomeAlreadyExists, nil
	}

	provisioning.LogResourceCreating(ctx.Observer, phase, "bucket", name)
	created, err := ctx.Storage.CreateBucket(ctx, name)
	if err != nil {
		return provisioning.OutcomeFailed, err
	}
	if !created {
		// Another run created it between the check and the create.
		provisioning.LogResourceExists(ctx.Observer, phase, "bucket", name, name)
		return provisioning.OutcomeAlreadyExists, nil
	}

	provisioning.LogResourceCreated(ctx.Observer, phase, "bucket", name, name)
	return provisioning.OutcomeCreated, nil
}
