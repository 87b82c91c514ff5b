package provisioning

import (
	"context"
	"sync"

	"github.com/imamik/lambdeploy/internal/platform/lambda"
	"github.com/imamik/lambdeploy/internal/platform/sts"
)

// MockIdentity is a mock implementation of IdentityVerifier.
type MockIdentity struct {
	CallerIdentityFunc func(ctx context.Context) (*sts.Identity, error)

	mu    sync.Mutex
	calls int
}

var _ IdentityVerifier = (*MockIdentity)(nil)

// CallerIdentity mocks the identity lookup.
func (m *MockIdentity) CallerIdentity(ctx context.Context) (*sts.Identity, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.CallerIdentityFunc != nil {
		return m.CallerIdentityFunc(ctx)
	}
	return &sts.Identity{Account: "123456789012", ARN: "arn:aws:iam::123456789012:user/mock", UserID: "AIDAMOCK"}, nil
}

// Calls returns the number of identity lookups.
func (m *MockIdentity) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Upload is one recorded UploadFile call.
type Upload struct {
	Bucket   string
	Key      string
	Path     string
	Metadata map[string]string
}

// MockStorage is a mock implementation of BucketManager.
// By default buckets do not exist, creation succeeds, and uploads succeed.
type MockStorage struct {
	BucketExistsFunc func(ctx context.Context, name string) (bool, error)
	CreateBucketFunc func(ctx context.Context, name string) (bool, error)
	UploadFileFunc   func(ctx context.Context, bucket, key, path string, metadata map[string]string) error

	mu          sync.Mutex
	existsCalls int
	createCalls int
	uploads     []Upload
}

var _ BucketManager = (*MockStorage)(nil)

// BucketExists mocks the bucket existence check.
func (m *MockStorage) BucketExists(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	m.existsCalls++
	m.mu.Unlock()
	if m.BucketExistsFunc != nil {
		return m.BucketExistsFunc(ctx, name)
	}
	return false, nil
}

// CreateBucket mocks bucket creation.
func (m *MockStorage) CreateBucket(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.CreateBucketFunc != nil {
		return m.CreateBucketFunc(ctx, name)
	}
	return true, nil
}

// UploadFile mocks the object upload and records it.
func (m *MockStorage) UploadFile(ctx context.Context, bucket, key, path string, metadata map[string]string) error {
	m.mu.Lock()
	m.uploads = append(m.uploads, Upload{Bucket: bucket, Key: key, Path: path, Metadata: metadata})
	m.mu.Unlock()
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, bucket, key, path, metadata)
	}
	return nil
}

// ExistsCalls returns the number of existence checks.
func (m *MockStorage) ExistsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.existsCalls
}

// CreateCalls returns the number of create-bucket calls.
func (m *MockStorage) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

// Uploads returns the recorded uploads.
func (m *MockStorage) Uploads() []Upload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Upload(nil), m.uploads...)
}

// MockFunctions is a mock implementation of FunctionManager.
// By default the function is absent and every call succeeds.
type MockFunctions struct {
	GetFunctionFunc        func(ctx context.Context, name string) (*lambda.Function, bool, error)
	CreateFunctionFunc     func(ctx context.Context, spec lambda.CreateSpec) (*lambda.Function, error)
	UpdateFunctionCodeFunc func(ctx context.Context, name, bucket, key string) (*lambda.Function, error)
	GetFunctionStatusFunc  func(ctx context.Context, name string) (*lambda.Function, error)

	mu          sync.Mutex
	getCalls    int
	creates     []lambda.CreateSpec
	updateCalls int
	statusCalls int
}

var _ FunctionManager = (*MockFunctions)(nil)

// GetFunction mocks the function lookup.
func (m *MockFunctions) GetFunction(ctx context.Context, name string) (*lambda.Function, bool, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()
	if m.GetFunctionFunc != nil {
		return m.GetFunctionFunc(ctx, name)
	}
	return nil, false, nil
}

// CreateFunction mocks function creation and records the spec.
func (m *MockFunctions) CreateFunction(ctx context.Context, spec lambda.CreateSpec) (*lambda.Function, error) {
	m.mu.Lock()
	m.creates = append(m.creates, spec)
	m.mu.Unlock()
	if m.CreateFunctionFunc != nil {
		return m.CreateFunctionFunc(ctx, spec)
	}
	return &lambda.Function{
		Name:    spec.Name,
		ARN:     "arn:aws:lambda:us-east-1:123456789012:function:" + spec.Name,
		Version: "1",
		State:   "Active",
	}, nil
}

// UpdateFunctionCode mocks the code update.
func (m *MockFunctions) UpdateFunctionCode(ctx context.Context, name, bucket, key string) (*lambda.Function, error) {
	m.mu.Lock()
	m.updateCalls++
	m.mu.Unlock()
	if m.UpdateFunctionCodeFunc != nil {
		return m.UpdateFunctionCodeFunc(ctx, name, bucket, key)
	}
	return &lambda.Function{
		Name:             name,
		ARN:              "arn:aws:lambda:us-east-1:123456789012:function:" + name,
		Version:          "2",
		State:            "Active",
		LastUpdateStatus: "Successful",
	}, nil
}

// GetFunctionStatus mocks the status read.
func (m *MockFunctions) GetFunctionStatus(ctx context.Context, name string) (*lambda.Function, error) {
	m.mu.Lock()
	m.statusCalls++
	m.mu.Unlock()
	if m.GetFunctionStatusFunc != nil {
		return m.GetFunctionStatusFunc(ctx, name)
	}
	return &lambda.Function{Name: name, State: "Active", LastUpdateStatus: "Successful"}, nil
}

// GetCalls returns the number of lookups.
func (m *MockFunctions) GetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls
}

// Creates returns the recorded create specs.
func (m *MockFunctions) Creates() []lambda.CreateSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]lambda.CreateSpec(nil), m.creates...)
}

// UpdateCalls returns the number of code updates.
func (m *MockFunctions) UpdateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

// StatusCalls returns the number of status reads.
func (m *MockFunctions) StatusCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusCalls
}
