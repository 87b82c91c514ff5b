package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/imamik/lambdeploy/internal/provisioning"
)

// Package builds the archive into the work directory and keeps it there.
// It needs no credentials and makes no remote calls.
func Package(ctx context.Context, opts ConfigOptions, asJSON bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.ValidatePackaging(); err != nil {
		return err
	}

	r := newReconciler(Clients{}, cfg)
	recorder := provisioning.NewRecordingObserver(provisioning.NewConsoleObserver(logrus.StandardLogger()))
	r.SetObserver(recorder)

	state, runErr := r.Package(ctx)
	if err := printResult("lambdeploy package "+cfg.Function.Name, state, recorder, runErr, asJSON); err != nil {
		return err
	}
	return runErr
}
