package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, LocalTarget, config.AdvisoryClientSettings.ActiveTarget)
	assert.Equal(t, DefaultPayloadFile, config.PayloadFile)
	assert.Equal(t, time.Duration(0), config.AdvisoryClientSettings.Timeout())

	baseUrl, err := config.AdvisoryClientSettings.ResolveTarget("")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000", baseUrl.String())
}

func TestLoadFromFileFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configuration.yaml")
	content := `
advisory_client_settings:
  active_target: remote
  targets:
    remote: https://advisory.example.org
  timeout_seconds: 15
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFrom(path)
	require.NoError(t, err)

	settings := config.AdvisoryClientSettings
	assert.Equal(t, RemoteTarget, settings.ActiveTarget)
	assert.Equal(t, DefaultLocalUrl, settings.Targets[LocalTarget])
	assert.Equal(t, DefaultAdvisoryPath, settings.AdvisoryPath)
	assert.Equal(t, 15*time.Second, settings.Timeout())
	assert.Equal(t, []string{"local", "remote"}, settings.TargetNames())

	baseUrl, err := settings.ResolveTarget("")
	require.NoError(t, err)
	assert.Equal(t, "advisory.example.org", baseUrl.Host)
}

func TestLoadFromInvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configuration.yaml")
	require.NoError(t, os.WriteFile(path, []byte("advisory_client_settings: ["), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestResolveTargetErrors(t *testing.T) {
	settings := Default().AdvisoryClientSettings

	_, err := settings.ResolveTarget(RemoteTarget)
	assert.ErrorContains(t, err, "no url configured")

	_, err = settings.ResolveTarget("staging")
	assert.ErrorContains(t, err, "unknown target")

	settings.Targets["broken"] = "ftp://127.0.0.1"
	_, err = settings.ResolveTarget("broken")
	assert.ErrorIs(t, err, ErrMalformedUrl)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configuration", "configuration.yaml")
	config := Default()
	config.AdvisoryClientSettings.Targets[RemoteTarget] = "https://advisory.example.org"

	require.NoError(t, Save(path, config))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}
