package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/lambdeploy/internal/config"
	"github.com/imamik/lambdeploy/internal/platform/sts"
	"github.com/imamik/lambdeploy/internal/provisioning/credentials"
)

func TestValidate_Success(t *testing.T) {
	env := setupDeploy(t)

	require.NoError(t, Validate(context.Background(), ConfigOptions{}, false))

	assert.Equal(t, 1, env.identity.Calls())
	assert.Equal(t, 0, env.storage.ExistsCalls())
	assert.Contains(t, env.out.String(), "account 123456789012")
}

func TestValidate_OnlyNeedsCredentialsAndRegion(t *testing.T) {
	env := setupDeploy(t)
	t.Setenv("FUNCTION_NAME", "")
	t.Setenv("ROLE_ARN", "")
	t.Setenv("BUCKET_NAME", "")

	require.NoError(t, Validate(context.Background(), ConfigOptions{}, false))
	assert.Equal(t, 1, env.identity.Calls())
}

func TestValidate_MissingCredentials(t *testing.T) {
	env := setupDeploy(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "")

	err := Validate(context.Background(), ConfigOptions{}, false)

	assert.ErrorIs(t, err, config.ErrMissingCredentials)
	assert.Equal(t, 0, env.identity.Calls())
}

func TestValidate_Rejected(t *testing.T) {
	env := setupDeploy(t)
	env.identity.CallerIdentityFunc = func(context.Context) (*sts.Identity, error) {
		return nil, errors.New("SignatureDoesNotMatch")
	}

	err := Validate(context.Background(), ConfigOptions{}, true)

	assert.ErrorIs(t, err, credentials.ErrInvalidCredentials)
	assert.Contains(t, env.out.String(), `"success": false`)
}
