package handlers

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/imamik/lambdeploy/internal/config"
)

// Factory function variables for config loading - can be replaced in tests.
var (
	// loadDotEnv loads variables from .env files without overriding the environment.
	loadDotEnv = godotenv.Load

	// findConfigFile looks for the default config file upwards from dir.
	findConfigFile = config.FindConfigFile

	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// getwd returns the working directory used for config discovery.
	getwd = os.Getwd
)

// ConfigOptions are the flags every command uses to resolve its configuration.
type ConfigOptions struct {
	ConfigPath string
	EnvFile    string

	// Overrides from flags; zero values leave the config untouched.
	Source       string
	WorkDir      string
	Wait         bool
	KeepArtifact bool
}

// loadConfig resolves the configuration in precedence order:
// file, then environment (including --env-file), then flags, then defaults.
// It does not validate; each command checks what it needs.
func loadConfig(opts ConfigOptions) (*config.Config, error) {
	if opts.EnvFile != "" {
		if err := loadDotEnv(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	cfg, err := loadConfigSource(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if opts.Source != "" {
		cfg.Source = opts.Source
	}
	if opts.WorkDir != "" {
		cfg.Deploy.WorkDir = opts.WorkDir
	}
	if opts.Wait {
		cfg.Deploy.Wait = true
	}
	if opts.KeepArtifact {
		cfg.Deploy.KeepArtifact = true
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// loadConfigSource loads an explicit file, a discovered file, or nothing.
// Without a file the configuration comes entirely from the environment.
func loadConfigSource(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		return cfg, nil
	}

	dir, err := getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	found, err := findConfigFile(dir)
	if errors.Is(err, config.ErrConfigNotFound) {
		return &config.Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfigFile(found)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", found, err)
	}
	return cfg, nil
}
