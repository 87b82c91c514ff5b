package handlers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/lambdeploy/internal/config"
)

func TestLoadConfig_NoFile_UsesEnvironment(t *testing.T) {
	env := setupDeploy(t)

	cfg, err := loadConfig(ConfigOptions{})
	require.NoError(t, err)

	assert.Equal(t, "demoFn", cfg.Function.Name)
	assert.Equal(t, "demo-artifacts", cfg.Bucket)
	assert.Equal(t, env.source, cfg.Source)
	assert.Equal(t, config.DefaultWorkDir, cfg.Deploy.WorkDir)
	assert.Equal(t, config.DefaultMemorySize, cfg.Function.MemorySize)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	setupDeploy(t)

	cfg, err := loadConfig(ConfigOptions{Source: "other", WorkDir: "dist", Wait: true, KeepArtifact: true})
	require.NoError(t, err)

	assert.Equal(t, "other", cfg.Source)
	assert.Equal(t, "dist", cfg.Deploy.WorkDir)
	assert.True(t, cfg.Deploy.Wait)
	assert.True(t, cfg.Deploy.KeepArtifact)
}

func TestLoadConfig_ExplicitFile_EnvironmentWins(t *testing.T) {
	setupDeploy(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`function:
  name: fromFile
  runtime: nodejs20.x
bucket: file-bucket
deploy:
  keepArtifact: true
`), 0o644))

	cfg, err := loadConfig(ConfigOptions{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "demoFn", cfg.Function.Name)
	assert.Equal(t, "python3.12", cfg.Function.Runtime)
	assert.True(t, cfg.Deploy.KeepArtifact)
}

func TestLoadConfig_DiscoveredFile(t *testing.T) {
	setupDeploy(t)
	t.Setenv("RUNTIME", "")
	findConfigFile = func(string) (string, error) { return "/repo/lambdeploy.yaml", nil }
	loadConfigFile = func(path string) (*config.Config, error) {
		assert.Equal(t, "/repo/lambdeploy.yaml", path)
		return &config.Config{Function: config.FunctionConfig{Runtime: "provided.al2023"}}, nil
	}

	cfg, err := loadConfig(ConfigOptions{})
	require.NoError(t, err)
	assert.Equal(t, "provided.al2023", cfg.Function.Runtime)
}

func TestLoadConfig_FileErrors(t *testing.T) {
	setupDeploy(t)

	_, err := loadConfig(ConfigOptions{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")

	findConfigFile = func(string) (string, error) { return "", errors.New("permission denied") }
	_, err = loadConfig(ConfigOptions{})
	assert.ErrorContains(t, err, "permission denied")
}

func TestLoadConfig_EnvFile(t *testing.T) {
	setupDeploy(t)
	var loaded []string
	loadDotEnv = func(files ...string) error {
		loaded = append(loaded, files...)
		return nil
	}

	_, err := loadConfig(ConfigOptions{EnvFile: "ci.env"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ci.env"}, loaded)

	loadDotEnv = func(...string) error { return errors.New("open ci.env: no such file") }
	_, err = loadConfig(ConfigOptions{EnvFile: "ci.env"})
	assert.ErrorContains(t, err, "failed to load env file ci.env")
}

func TestLoadConfig_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	setupDeploy(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FUNCTION_NAME=fromDotenv\n"), 0o644))

	cfg, err := loadConfig(ConfigOptions{EnvFile: path})
	require.NoError(t, err)

	assert.Equal(t, "demoFn", cfg.Function.Name)
}

func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	setupDeploy(t)
	t.Setenv("MEMORY_SIZE", "lots")

	_, err := loadConfig(ConfigOptions{})
	assert.ErrorContains(t, err, "function.memorySize")
}
