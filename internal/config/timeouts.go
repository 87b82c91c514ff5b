package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the tunable waits of a deploy run.
type Timeouts struct {
	FunctionWait      time.Duration // Upper bound for waiting on a function update
	RetryMaxAttempts  int           // Polls before giving up on a function update
	RetryInitialDelay time.Duration // First delay between polls
	RetryMaxDelay     time.Duration // Cap on the delay between polls
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - LAMBDEPLOY_TIMEOUT_WAIT (default: 5m)
//   - LAMBDEPLOY_RETRY_MAX_ATTEMPTS (default: 30)
//   - LAMBDEPLOY_RETRY_INITIAL_DELAY (default: 1s)
//   - LAMBDEPLOY_RETRY_MAX_DELAY (default: 15s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		FunctionWait:      parseDuration("LAMBDEPLOY_TIMEOUT_WAIT", 5*time.Minute),
		RetryMaxAttempts:  parseInt("LAMBDEPLOY_RETRY_MAX_ATTEMPTS", 30),
		RetryInitialDelay: parseDuration("LAMBDEPLOY_RETRY_INITIAL_DELAY", 1*time.Second),
		RetryMaxDelay:     parseDuration("LAMBDEPLOY_RETRY_MAX_DELAY", 15*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}
