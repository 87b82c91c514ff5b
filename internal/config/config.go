package config

import "strings"

// Config is the deployment configuration for a single pipeline run.
// It is treated as immutable once validated.
type Config struct {
	// Function describes the Lambda function to create or update.
	Function FunctionConfig `yaml:"function"`

	// Bucket is the S3 bucket that holds the deployment artifact.
	// It is created in Region when missing.
	Bucket string `yaml:"bucket" validate:"required"`

	// Region is the AWS region for every API call.
	Region string `yaml:"region" validate:"required"`

	// Source is the directory whose contents become the archive root.
	Source string `yaml:"source,omitempty"`

	// Endpoint overrides the AWS endpoint for all services (LocalStack, tests).
	Endpoint string `yaml:"endpoint,omitempty" validate:"omitempty,url"`

	// Deploy controls run behavior that does not affect the remote resource.
	Deploy DeployConfig `yaml:"deploy,omitempty"`

	// Credentials are injected from the environment only and never persisted.
	Credentials Credentials `yaml:"-" validate:"-"`
}

// FunctionConfig describes the Lambda function resource.
type FunctionConfig struct {
	Name        string `yaml:"name" validate:"required"`
	Handler     string `yaml:"handler" validate:"required"`
	Runtime     string `yaml:"runtime" validate:"required"`
	Description string `yaml:"description,omitempty" validate:"max=256"`

	// Role is the ARN of the execution role. Required for creation;
	// there is no built-in default.
	Role string `yaml:"role" validate:"required"`

	// MemorySize in MB.
	MemorySize int32 `yaml:"memorySize,omitempty" validate:"min=128,max=10240"`

	// Timeout in seconds.
	Timeout int32 `yaml:"timeout,omitempty" validate:"min=1,max=900"`

	Architecture string            `yaml:"architecture,omitempty" validate:"omitempty,oneof=x86_64 arm64"`
	Environment  map[string]string `yaml:"environment,omitempty"`
}

// DeployConfig holds run-level switches.
type DeployConfig struct {
	// WorkDir is where the archive is written before upload.
	WorkDir string `yaml:"workDir,omitempty"`

	// Wait blocks until the function reports a successful update.
	Wait bool `yaml:"wait,omitempty"`

	// KeepArtifact leaves the local archive in WorkDir after upload.
	KeepArtifact bool `yaml:"keepArtifact,omitempty"`
}

// Credentials is an access-key-pair style AWS credential.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// IsComplete reports whether both halves of the key pair are present.
func (c Credentials) IsComplete() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// ApplyDefaults fills zero-valued optional fields.
func (c *Config) ApplyDefaults() {
	if c.Source == "" {
		c.Source = DefaultSourceDir
	}
	if c.Deploy.WorkDir == "" {
		c.Deploy.WorkDir = DefaultWorkDir
	}
	if c.Function.MemorySize == 0 {
		c.Function.MemorySize = DefaultMemorySize
	}
	if c.Function.Timeout == 0 {
		c.Function.Timeout = DefaultTimeout
	}
}

// Starter returns a config suitable for `lambdeploy init`.
func Starter(name string) *Config {
	if name == "" {
		name = "my-function"
	}
	return &Config{
		Function: FunctionConfig{
			Name:        name,
			Handler:     "main.handler",
			Runtime:     "python3.12",
			Description: "Deployed by lambdeploy",
			Role:        "arn:aws:iam::123456789012:role/lambda-execution",
			MemorySize:  DefaultMemorySize,
			Timeout:     DefaultTimeout,
		},
		Bucket: strings.ToLower(name) + "-artifacts",
		Region: "us-east-1",
		Source: DefaultSourceDir,
	}
}
