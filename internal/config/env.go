package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that set them.
// When several variables are listed, the first one that is set wins.
var envBindings = []struct {
	key  string
	envs []string
}{
	{"function.name", []string{"FUNCTION_NAME"}},
	{"function.handler", []string{"HANDLER"}},
	{"function.runtime", []string{"RUNTIME"}},
	{"function.description", []string{"DESCRIPTION"}},
	{"function.role", []string{"ROLE_ARN"}},
	{"function.memorySize", []string{"MEMORY_SIZE"}},
	{"function.timeout", []string{"TIMEOUT"}},
	{"bucket", []string{"BUCKET_NAME"}},
	{"region", []string{"AWS_REGION", "AWS_DEFAULT_REGION"}},
	{"source", []string{"SOURCE_DIR"}},
	{"endpoint", []string{"AWS_ENDPOINT_URL"}},
	{"credentials.accessKeyID", []string{"AWS_ACCESS_KEY_ID"}},
	{"credentials.secretAccessKey", []string{"AWS_SECRET_ACCESS_KEY"}},
	{"credentials.sessionToken", []string{"AWS_SESSION_TOKEN"}},
}

// ApplyEnv overrides cfg with values from the process environment.
// Empty variables are ignored.
func ApplyEnv(cfg *Config) error {
	v := viper.New()
	for _, b := range envBindings {
		if err := v.BindEnv(append([]string{b.key}, b.envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b.key, err)
		}
	}

	setString(v, "function.name", &cfg.Function.Name)
	setString(v, "function.handler", &cfg.Function.Handler)
	setString(v, "function.runtime", &cfg.Function.Runtime)
	setString(v, "function.description", &cfg.Function.Description)
	setString(v, "function.role", &cfg.Function.Role)
	setString(v, "bucket", &cfg.Bucket)
	setString(v, "region", &cfg.Region)
	setString(v, "source", &cfg.Source)
	setString(v, "endpoint", &cfg.Endpoint)
	setString(v, "credentials.accessKeyID", &cfg.Credentials.AccessKeyID)
	setString(v, "credentials.secretAccessKey", &cfg.Credentials.SecretAccessKey)
	setString(v, "credentials.sessionToken", &cfg.Credentials.SessionToken)

	if err := setInt32(v, "function.memorySize", &cfg.Function.MemorySize); err != nil {
		return err
	}
	return setInt32(v, "function.timeout", &cfg.Function.Timeout)
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setInt32(v *viper.Viper, key string, dst *int32) error {
	if !v.IsSet(key) {
		return nil
	}
	raw := v.GetString(key)
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", raw, key, err)
	}
	*dst = int32(n)
	return nil
}
