package function

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/lambdeploy/internal/platform/lambda"
	"github.com/imamik/lambdeploy/internal/provisioning"
	"github.com/imamik/lambdeploy/internal/util/retry"
)

// Function states and update statuses as reported by Lambda.
const (
	stateActive      = "Active"
	stateFailed      = "Failed"
	statusInProgress = "InProgress"
	statusFailed     = "Failed"
)

// WaitForFunction polls until the function is active with no update in flight.
// A failed state or update stops polling immediately.
func (p *Provisioner) WaitForFunction(ctx *provisioning.Context) error {
	name := ctx.Config.Function.Name
	timeouts := ctx.Timeouts

	waitCtx, cancel := context.WithTimeout(ctx, timeouts.FunctionWait)
	defer cancel()

	var last *lambda.Function
	err := retry.Until(waitCtx, func(c context.Context) (bool, error) {
		fn, err := ctx.Functions.GetFunctionStatus(c, name)
		if err != nil {
			return false, err
		}
		last = fn
		return functionReady(fn)
	},
		retry.WithMaxAttempts(timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(timeouts.RetryInitialDelay),
		retry.WithMaxDelay(timeouts.RetryMaxDelay),
		retry.WithNotify(func(attempt int, next time.Duration, _ error) {
			ctx.Observer.Progress(phase, attempt, timeouts.RetryMaxAttempts)
			ctx.Observer.Printf("Waiting %v for function %s to settle", next, name)
		}),
	)
	if err != nil {
		return fmt.Errorf("function %s did not become ready: %w", name, err)
	}

	if last != nil && ctx.State.Function != nil {
		ctx.State.Function.State = last.State
		ctx.State.Function.LastUpdateStatus = last.LastUpdateStatus
	}
	ctx.Observer.Printf("Function %s is %s", name, stateActive)
	return nil
}

func functionReady(fn *lambda.Function) (bool, error) {
	if fn.State == stateFailed || fn.LastUpdateStatus == statusFailed {
		reason := fn.StateReason
		if reason == "" {
			reason = "no reason given"
		}
		return false, retry.Fatal(fmt.Errorf("function %s failed: %s", fn.Name, reason))
	}
	return fn.State == stateActive && fn.LastUpdateStatus != statusInProgress, nil
}
