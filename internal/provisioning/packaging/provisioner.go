package packaging

import (
	"fmt"

	"github.com/imamik/lambdeploy/internal/artifact"
	"github.com/imamik/lambdeploy/internal/provisioning"
	"github.com/imamik/lambdeploy/internal/util/naming"
)

const phase = "package"

// Provisioner zips the configured source directory into the work directory.
type Provisioner struct{}

// NewProvisioner creates a new packaging provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config
	path := naming.ArtifactPath(cfg.Deploy.WorkDir, cfg.Function.Name)

	ctx.Observer.Printf("Packaging %s into %s", cfg.Source, path)
	art, err := artifact.Build(cfg.Source, path)
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phase, "artifact", naming.Artifact(cfg.Function.Name), err)
		return fmt.Errorf("failed to package %s: %w", cfg.Source, err)
	}

	ctx.State.Artifact = art
	ctx.Metrics.ObserveArtifact(art.Size, art.Files)
	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceCreated,
		Phase:    phase,
		Resource: art.Name,
		Message:  "artifact created",
		Fields: map[string]string{
			"type":   "artifact",
			"path":   art.Path,
			"files":  fmt.Sprint(art.Files),
			"bytes":  fmt.Sprint(art.Size),
			"sha256": art.SHA256,
		},
	})
	return nil
}
