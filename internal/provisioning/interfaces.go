package provisioning

import (
	"context"

	"github.com/imamik/lambdeploy/internal/platform/lambda"
	"github.com/imamik/lambdeploy/internal/platform/sts"
)

// Phase defines the interface for a deployment phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the logic for this phase.
	Provision(ctx *Context) error
}

// IdentityVerifier resolves the identity behind the configured credentials.
// Implemented by internal/platform/sts.Client.
type IdentityVerifier interface {
	CallerIdentity(ctx context.Context) (*sts.Identity, error)
}

// BucketManager manages the artifact bucket and its objects.
// Implemented by internal/platform/s3.Client.
type BucketManager interface {
	// BucketExists reports whether the bucket exists and is reachable.
	BucketExists(ctx context.Context, name string) (bool, error)

	// CreateBucket creates the bucket. created is false when the caller
	// already owned it.
	CreateBucket(ctx context.Context, name string) (created bool, err error)

	// UploadFile uploads a local file, overwriting any object at key.
	UploadFile(ctx context.Context, bucket, key, path string, metadata map[string]string) error
}

// FunctionManager manages the deployed function.
// Implemented by internal/platform/lambda.Client.
type FunctionManager interface {
	// GetFunction returns found=false with a nil error only when the function does not exist.
	GetFunction(ctx context.Context, name string) (*lambda.Function, bool, error)

	CreateFunction(ctx context.Context, spec lambda.CreateSpec) (*lambda.Function, error)

	UpdateFunctionCode(ctx context.Context, name, bucket, key string) (*lambda.Function, error)

	GetFunctionStatus(ctx context.Context, name string) (*lambda.Function, error)
}
