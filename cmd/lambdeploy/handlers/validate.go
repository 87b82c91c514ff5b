package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/imamik/lambdeploy/internal/provisioning"
)

// Validate checks that the injected credentials resolve to an identity.
// It builds nothing and changes nothing.
func Validate(ctx context.Context, opts ConfigOptions, asJSON bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.ValidateCredentials(); err != nil {
		return err
	}

	clients, err := initializeClients(ctx, cfg)
	if err != nil {
		return err
	}

	r := newReconciler(clients, cfg)
	recorder := provisioning.NewRecordingObserver(provisioning.NewConsoleObserver(logrus.StandardLogger()))
	r.SetObserver(recorder)

	state, runErr := r.Validate(ctx)
	if err := printResult("lambdeploy validate", state, recorder, runErr, asJSON); err != nil {
		return err
	}
	return runErr
}
