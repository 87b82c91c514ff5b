package lambda

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"
)

// Function is the subset of a function's configuration a deploy reports on.
type Function struct {
	Name             string `json:"name"`
	ARN              string `json:"arn"`
	Version          string `json:"version"`
	CodeSHA256       string `json:"codeSha256,omitempty"`
	State            string `json:"state,omitempty"`
	StateReason      string `json:"stateReason,omitempty"`
	LastUpdateStatus string `json:"lastUpdateStatus,omitempty"`
}

// CreateSpec is everything needed to create a function from an S3 artifact.
type CreateSpec struct {
	Name         string
	Runtime      string
	Handler      string
	Description  string
	Role         string
	MemorySize   int32
	Timeout      int32
	Architecture string
	Environment  map[string]string

	Bucket string
	Key    string
}

// Client wraps the Lambda client.
type Client struct {
	lambda *lambda.Client
}

// NewClient creates a Lambda client from a resolved AWS config.
func NewClient(cfg aws.Config) *Client {
	return &Client{lambda: lambda.NewFromConfig(cfg)}
}

// GetFunction looks up a function by name.
// It returns found=false with a nil error only when Lambda reports the
// function does not exist; every other failure is returned as an error.
func (c *Client) GetFunction(ctx context.Context, name string) (*Function, bool, error) {
	out, err := c.lambda.GetFunction(ctx, &lambda.GetFunctionInput{
		FunctionName: aws.String(name),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get function %s: %w", name, err)
	}
	if out.Configuration == nil {
		return nil, false, fmt.Errorf("failed to get function %s: response has no configuration", name)
	}
	return fromConfiguration(out.Configuration), true, nil
}

// CreateFunction creates a function from an S3 artifact and publishes version 1.
func (c *Client) CreateFunction(ctx context.Context, spec CreateSpec) (*Function, error) {
	input := &lambda.CreateFunctionInput{
		FunctionName: aws.String(spec.Name),
		Role:         aws.String(spec.Role),
		Runtime:      types.Runtime(spec.Runtime),
		Handler:      aws.String(spec.Handler),
		PackageType:  types.PackageTypeZip,
		Code: &types.FunctionCode{
			S3Bucket: aws.String(spec.Bucket),
			S3Key:    aws.String(spec.Key),
		},
		Publish: true,
	}
	if spec.Description != "" {
		input.Description = aws.String(spec.Description)
	}
	if spec.MemorySize > 0 {
		input.MemorySize = aws.Int32(spec.MemorySize)
	}
	if spec.Timeout > 0 {
		input.Timeout = aws.Int32(spec.Timeout)
	}
	if spec.Architecture != "" {
		input.Architectures = []types.Architecture{types.Architecture(spec.Architecture)}
	}
	if len(spec.Environment) > 0 {
		input.Environment = &types.Environment{Variables: spec.Environment}
	}

	out, err := c.lambda.CreateFunction(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create function %s: %w", spec.Name, err)
	}
	return &Function{
		Name:             aws.ToString(out.FunctionName),
		ARN:              aws.ToString(out.FunctionArn),
		Version:          aws.ToString(out.Version),
		CodeSHA256:       aws.ToString(out.CodeSha256),
		State:            string(out.State),
		StateReason:      aws.ToString(out.StateReason),
		LastUpdateStatus: string(out.LastUpdateStatus),
	}, nil
}

// UpdateFunctionCode points an existing function at a new S3 artifact and
// publishes a new version. Configuration is left unchanged.
func (c *Client) UpdateFunctionCode(ctx context.Context, name, bucket, key string) (*Function, error) {
	out, err := c.lambda.UpdateFunctionCode(ctx, &lambda.UpdateFunctionCodeInput{
		FunctionName: aws.String(name),
		S3Bucket:     aws.String(bucket),
		S3Key:        aws.String(key),
		Publish:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update function code %s: %w", name, err)
	}
	return &Function{
		Name:             aws.ToString(out.FunctionName),
		ARN:              aws.ToString(out.FunctionArn),
		Version:          aws.ToString(out.Version),
		CodeSHA256:       aws.ToString(out.CodeSha256),
		State:            string(out.State),
		StateReason:      aws.ToString(out.StateReason),
		LastUpdateStatus: string(out.LastUpdateStatus),
	}, nil
}

// GetFunctionStatus reads the current state of a function.
func (c *Client) GetFunctionStatus(ctx context.Context, name string) (*Function, error) {
	out, err := c.lambda.GetFunctionConfiguration(ctx, &lambda.GetFunctionConfigurationInput{
		FunctionName: aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get function configuration %s: %w", name, err)
	}
	return &Function{
		Name:             aws.ToString(out.FunctionName),
		ARN:              aws.ToString(out.FunctionArn),
		Version:          aws.ToString(out.Version),
		CodeSHA256:       aws.ToString(out.CodeSha256),
		State:            string(out.State),
		StateReason:      aws.ToString(out.StateReason),
		LastUpdateStatus: string(out.LastUpdateStatus),
	}, nil
}

func fromConfiguration(cfg *types.FunctionConfiguration) *Function {
	return &Function{
		Name:             aws.ToString(cfg.FunctionName),
		ARN:              aws.ToString(cfg.FunctionArn),
		Version:          aws.ToString(cfg.Version),
		CodeSHA256:       aws.ToString(cfg.CodeSha256),
		State:            string(cfg.State),
		StateReason:      aws.ToString(cfg.StateReason),
		LastUpdateStatus: string(cfg.LastUpdateStatus),
	}
}

// isNotFoundError checks if the error means the function does not exist.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var rnf *types.ResourceNotFoundException
	if errors.As(err, &rnf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ResourceNotFoundException"
	}
	return false
}
