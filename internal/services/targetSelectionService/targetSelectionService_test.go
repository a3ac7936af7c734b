package targetselectionservice

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	cache "github.com/RobsonDevCode/growmate-probe/internal/caching"
	"github.com/RobsonDevCode/growmate-probe/internal/clients"
	"github.com/RobsonDevCode/growmate-probe/internal/configuration"
	payloadreaderservice "github.com/RobsonDevCode/growmate-probe/internal/services/payloadReaderService"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSelection(t *testing.T, prompt Prompter) (*TargetSelection, string) {
	t.Helper()

	selection, _, dir := newSelectionWithReader(t, prompt)
	return selection, dir
}

func newSelectionWithReader(t *testing.T, prompt Prompter) (*TargetSelection, *payloadreaderservice.PayloadReader, string) {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"test_payload.json", "lab_report.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{"crop":"Paddy"}`), 0644))
	}

	provider := clients.NewClientProvider(configuration.Default().AdvisoryClientSettings, zap.NewNop())
	reader := payloadreaderservice.NewPayloadReader(cache.NewCache(0))
	return NewTargetSelection(provider, reader, prompt), reader, dir
}

func TestSelect(t *testing.T) {
	var asked [][]string
	prompt := func(message string, options []string) (int, error) {
		asked = append(asked, options)
		return len(options) - 1, nil
	}

	selection, dir := newSelection(t, prompt)
	got, err := selection.Select(dir)
	require.NoError(t, err)

	assert.Equal(t, Selection{PayloadPath: filepath.Join(dir, "test_payload.json"), Target: "remote"}, got)
	assert.Equal(t, [][]string{{"lab_report.json", "test_payload.json"}, {"local", "remote"}}, asked)
}

func TestSelectCancelled(t *testing.T) {
	prompt := func(message string, options []string) (int, error) {
		return 0, errors.New("interrupt")
	}

	selection, dir := newSelection(t, prompt)
	_, err := selection.Select(dir)
	assert.Error(t, err)
}

func TestSelectNoPayloads(t *testing.T) {
	selection, _ := newSelection(t, func(string, []string) (int, error) { return 0, nil })

	_, err := selection.Select(t.TempDir())
	assert.ErrorContains(t, err, "no json payload files")
}

func TestSelectWarmsPayloadCacheForSend(t *testing.T) {
	selection, reader, dir := newSelectionWithReader(t, func(string, []string) (int, error) { return 0, nil })

	got, err := selection.Select(dir)
	require.NoError(t, err)

	require.NoError(t, os.Remove(got.PayloadPath))

	payload, err := reader.ReadPayload(got.PayloadPath)
	require.NoError(t, err)
	assert.Equal(t, `{"crop":"Paddy"}`, string(payload))
}

func TestSelectUnreadablePayloadSkipsTargetPrompt(t *testing.T) {
	var dir string
	prompts := 0
	selection, _, dir := newSelectionWithReader(t, func(message string, options []string) (int, error) {
		prompts++
		require.NoError(t, os.Remove(filepath.Join(dir, options[0])))
		return 0, nil
	})

	_, err := selection.Select(dir)
	require.Error(t, err)
	assert.Equal(t, 1, prompts)
}
