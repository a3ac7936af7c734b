package clients

import (
	"testing"

	"github.com/RobsonDevCode/growmate-probe/internal/configuration"
	exitcodes "github.com/RobsonDevCode/growmate-probe/internal/constants/exitCodes"
	probeerrors "github.com/RobsonDevCode/growmate-probe/internal/probeErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestForTarget(t *testing.T) {
	settings := configuration.Default().AdvisoryClientSettings
	settings.Targets[configuration.RemoteTarget] = "https://advisory.example.org"
	provider := NewClientProvider(settings, zap.NewNop())

	local, err := provider.ForTarget("", "")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000/api/advisory", local.AdvisoryUrl())

	remote, err := provider.ForTarget(configuration.RemoteTarget, "")
	require.NoError(t, err)
	assert.Equal(t, "https://advisory.example.org/api/advisory", remote.AdvisoryUrl())

	override, err := provider.ForTarget(configuration.RemoteTarget, "http://10.0.0.5:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8080/api/advisory", override.AdvisoryUrl())

	assert.Equal(t, []string{"local", "remote"}, provider.TargetNames())
}

func TestForTargetMalformed(t *testing.T) {
	provider := NewClientProvider(configuration.Default().AdvisoryClientSettings, zap.NewNop())

	_, err := provider.ForTarget("", "127.0.0.1:5000")
	require.Error(t, err)
	assert.Equal(t, exitcodes.UrlMalformed, probeerrors.ExitCode(err))

	_, err = provider.ForTarget(configuration.RemoteTarget, "")
	assert.Equal(t, exitcodes.UrlMalformed, probeerrors.ExitCode(err))
}
