package function

import (
	"fmt"

	"github.com/imamik/lambdeploy/internal/provisioning"
	"github.com/imamik/lambdeploy/internal/util/naming"
)

// UploadArtifact puts the archive into the bucket under its own name,
// replacing whatever object was there.
func (p *Provisioner) UploadArtifact(ctx *provisioning.Context) error {
	art := ctx.State.Artifact
	bucket := ctx.Config.Bucket

	metadata := map[string]string{
		"run-id": ctx.State.RunID,
		"sha256": art.SHA256,
	}
	if err := ctx.Storage.UploadFile(ctx, bucket, art.Name, art.Path, metadata); err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phase, "object", art.Name, err)
		return err
	}

	ctx.State.ObjectURI = naming.ObjectURI(bucket, art.Name)
	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceCreated,
		Phase:    phase,
		Resource: ctx.State.ObjectURI,
		Message:  "object uploaded",
		Fields: map[string]string{
			"type":  "object",
			"bytes": fmt.Sprint(art.Size),
		},
	})
	return nil
}
