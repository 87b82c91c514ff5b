package provisioning

import (
	"github.com/google/uuid"

	"github.com/imamik/lambdeploy/internal/artifact"
	"github.com/imamik/lambdeploy/internal/platform/lambda"
	"github.com/imamik/lambdeploy/internal/platform/sts"
)

// State holds the shared results of deployment phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	RunID string `json:"runId"`

	// Credentials phase
	Identity *sts.Identity `json:"identity,omitempty"`

	// Package phase
	Artifact *artifact.Artifact `json:"artifact,omitempty"`

	// Deploy phase
	BucketOutcome   Outcome          `json:"bucketOutcome"`
	ObjectURI       string           `json:"objectUri,omitempty"`
	Lookup          LookupStatus     `json:"lookup"`
	FunctionOutcome Outcome          `json:"functionOutcome"`
	Function        *lambda.Function `json:"function,omitempty"`
	ArtifactRemoved bool             `json:"artifactRemoved"`
}

// NewState creates an empty state with a fresh run ID.
func NewState() *State {
	return &State{RunID: uuid.NewString()}
}
