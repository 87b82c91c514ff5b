package credentials

import (
	"errors"
	"fmt"

	"github.com/imamik/lambdeploy/internal/provisioning"
	"github.com/imamik/lambdeploy/internal/util/retry"
)

const phase = "credentials"

// ErrInvalidCredentials is returned when the identity check fails.
var ErrInvalidCredentials = errors.New("credentials could not be verified")

// Provisioner runs the identity check.
type Provisioner struct{}

// NewProvisioner creates a new credentials provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
// Any failure is fatal; the check is never retried.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.Identity == nil {
		return retry.Fatal(fmt.Errorf("%w: no identity client configured", ErrInvalidCredentials))
	}

	id, err := ctx.Identity.CallerIdentity(ctx)
	if err != nil {
		return retry.Fatal(fmt.Errorf("%w: %w", ErrInvalidCredentials, err))
	}

	ctx.State.Identity = id
	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceExists,
		Phase:    phase,
		Resource: id.ARN,
		Message:  fmt.Sprintf("credentials valid for account %s", id.Account),
		Fields: map[string]string{
			"account": id.Account,
			"arn":     id.ARN,
			"user_id": id.UserID,
		},
	})
	return nil
}
