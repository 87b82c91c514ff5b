package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingCredentials is returned when the access key pair is incomplete.
var ErrMissingCredentials = errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required")

var (
	functionNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	bucketNameRegex   = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)
	roleARNRegex      = regexp.MustCompile(`^arn:aws[a-zA-Z-]*:iam::\d{12}:role/[\w+=,.@/-]+$`)
	ipv4LikeRegex     = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)
)

// validate is shared; validator caches struct metadata per type.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report yaml field names so errors match what users write.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks a fully resolved configuration before a deploy run.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		errs = append(errs, translate(err)...)
	}

	if c.Function.Name != "" && !functionNameRegex.MatchString(c.Function.Name) {
		errs = append(errs, fmt.Errorf("function.name %q must be 1-64 letters, digits, hyphens or underscores", c.Function.Name))
	}
	if c.Bucket != "" && !IsValidBucketName(c.Bucket) {
		errs = append(errs, fmt.Errorf("bucket %q is not a valid S3 bucket name", c.Bucket))
	}
	if c.Function.Role != "" && !roleARNRegex.MatchString(c.Function.Role) {
		errs = append(errs, fmt.Errorf("function.role %q is not an IAM role ARN", c.Function.Role))
	}
	if !c.Credentials.IsComplete() {
		errs = append(errs, ErrMissingCredentials)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// ValidateCredentials checks only what the credential check needs.
func (c *Config) ValidateCredentials() error {
	var errs []error
	if c.Region == "" {
		errs = append(errs, errors.New("region is required"))
	}
	if !c.Credentials.IsComplete() {
		errs = append(errs, ErrMissingCredentials)
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// ValidatePackaging checks only what building the archive needs.
func (c *Config) ValidatePackaging() error {
	switch {
	case c.Function.Name == "":
		return errors.New("configuration validation failed: function.name is required")
	case !functionNameRegex.MatchString(c.Function.Name):
		return fmt.Errorf("configuration validation failed: function.name %q must be 1-64 letters, digits, hyphens or underscores", c.Function.Name)
	case c.Source == "":
		return errors.New("configuration validation failed: source is required")
	}
	return nil
}

// IsValidBucketName applies the S3 general purpose bucket naming rules.
func IsValidBucketName(name string) bool {
	if !bucketNameRegex.MatchString(name) {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	// Must not be formatted as an IPv4 address.
	return !ipv4LikeRegex.MatchString(name)
}

func translate(err error) []error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}

	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Errorf("%s is required", field))
		case "min", "max":
			out = append(out, fmt.Errorf("%s must be %s %s (got %v)", field, boundWord(fe.Tag()), fe.Param(), fe.Value()))
		case "oneof":
			out = append(out, fmt.Errorf("%s must be one of [%s] (got %v)", field, fe.Param(), fe.Value()))
		default:
			out = append(out, fmt.Errorf("%s failed %q validation", field, fe.Tag()))
		}
	}
	return out
}

func boundWord(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}
