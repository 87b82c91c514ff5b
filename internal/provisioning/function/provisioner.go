package function

import (
	"errors"
	"fmt"

	"github.com/imamik/lambdeploy/internal/artifact"
	"github.com/imamik/lambdeploy/internal/provisioning"
)

const phase = "deploy"

// ErrFunctionQueryFailed is returned when function existence cannot be determined.
var ErrFunctionQueryFailed = errors.New("function existence query failed")

// ErrNoArtifact is returned when the deploy phase runs without a packaged artifact.
var ErrNoArtifact = errors.New("no artifact to deploy")

// Provisioner handles the bucket, the upload, and the function itself.
type Provisioner struct{}

// NewProvisioner creates a new function provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
// Each step depends on the one before it. Nothing is rolled back on failure.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.Artifact == nil {
		return ErrNoArtifact
	}

	// 1. Bucket
	if err := p.EnsureBucket(ctx); err != nil {
		return err
	}

	// 2. Upload
	if err := p.UploadArtifact(ctx); err != nil {
		return err
	}

	// 3. Function
	if err := p.ReconcileFunction(ctx); err != nil {
		return err
	}

	// 4. Wait
	if ctx.Config.Deploy.Wait {
		if err := p.WaitForFunction(ctx); err != nil {
			return err
		}
	}

	// 5. Local archive
	if !ctx.Config.Deploy.KeepArtifact {
		if err := artifact.Remove(ctx.State.Artifact.Path); err != nil {
			return fmt.Errorf("deployed, but %w", err)
		}
		ctx.State.ArtifactRemoved = true
		provisioning.LogResourceDeleted(ctx.Observer, phase, "artifact", ctx.State.Artifact.Name)
	}
	return nil
}
