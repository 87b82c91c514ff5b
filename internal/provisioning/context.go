package provisioning

import (
	"context"

	"github.com/imamik/lambdeploy/internal/config"
	"github.com/imamik/lambdeploy/internal/util/naming"
)

// Context wraps all dependencies and state needed for a deployment phase.
type Context struct {
	context.Context
	Config    *config.Config
	State     *State
	Identity  IdentityVerifier
	Storage   BucketManager
	Functions FunctionManager
	Observer  Observer
	Metrics   *Metrics
	Timeouts  *config.Timeouts
}

// NewContext creates a new deployment context.
// Any of the clients may be nil when the phases run do not need them.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	identity IdentityVerifier,
	storage BucketManager,
	functions FunctionManager,
) *Context {
	job := ""
	if cfg != nil {
		job = naming.MetricsJob(cfg.Function.Name)
	}
	return &Context{
		Context:   ctx,
		Config:    cfg,
		State:     NewState(),
		Identity:  identity,
		Storage:   storage,
		Functions: functions,
		Observer:  NewConsoleObserver(nil),
		Metrics:   NewMetrics(job),
		Timeouts:  config.LoadTimeouts(),
	}
}
