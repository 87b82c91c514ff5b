package provisioning

import "github.com/imamik/lambdeploy/internal/platform/lambda"

// Outcome is the result of an ensure or act operation on a remote resource.
type Outcome int

const (
	// OutcomeUnknown means the operation has not run.
	OutcomeUnknown Outcome = iota
	// OutcomeAlreadyExists means the resource was present and left alone.
	OutcomeAlreadyExists
	// OutcomeCreated means the resource was created by this run.
	OutcomeCreated
	// OutcomeUpdated means an existing resource was changed by this run.
	OutcomeUpdated
	// OutcomeFailed means the operation failed and the run stopped.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAlreadyExists:
		return "already-exists"
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// LookupStatus is the result of asking whether a function exists.
type LookupStatus int

const (
	// LookupUnknown means no lookup has run yet.
	LookupUnknown LookupStatus = iota
	// LookupQueryFailed means existence could not be determined.
	LookupQueryFailed
	// LookupPresent means the function exists.
	LookupPresent
	// LookupAbsent means the function does not exist.
	LookupAbsent
)

func (s LookupStatus) String() string {
	switch s {
	case LookupPresent:
		return "present"
	case LookupAbsent:
		return "absent"
	case LookupQueryFailed:
		return "query-failed"
	default:
		return "not-run"
	}
}

// MarshalText encodes the status by name.
func (s LookupStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FunctionLookup is the tri-state result of a function existence query.
// Function is set only when Status is LookupPresent, Err only when it is
// LookupQueryFailed.
type FunctionLookup struct {
	Status   LookupStatus
	Function *lambda.Function
	Err      error
}

// LookupFunction queries the function and classifies the result.
// A failed query is never reported as absent.
func LookupFunction(ctx *Context, name string) FunctionLookup {
	fn, found, err := ctx.Functions.GetFunction(ctx, name)
	switch {
	case err != nil:
		return FunctionLookup{Status: LookupQueryFailed, Err: err}
	case !found:
		return FunctionLookup{Status: LookupAbsent}
	default:
		return FunctionLookup{Status: LookupPresent, Function: fn}
	}
}
