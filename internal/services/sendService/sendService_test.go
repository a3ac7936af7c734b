package sendservice

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	cache "github.com/RobsonDevCode/growmate-probe/internal/caching"
	"github.com/RobsonDevCode/growmate-probe/internal/clients"
	"github.com/RobsonDevCode/growmate-probe/internal/configuration"
	exitcodes "github.com/RobsonDevCode/growmate-probe/internal/constants/exitCodes"
	probeerrors "github.com/RobsonDevCode/growmate-probe/internal/probeErrors"
	payloadreaderservice "github.com/RobsonDevCode/growmate-probe/internal/services/payloadReaderService"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const advisoryReply = `{"status":"success","meta":{"mode":"GPS Zone","region":"Udupi","crop":"Paddy","soil_profile":{"potassium":{"en":"Low","kn":"ಕಡಿಮೆ"}}},"advisory":{"shopping_list":[{"name":{"en":"Urea","kn":"ಯೂರಿಯಾ"},"qty_display":{"en":"2 Bags","kn":"2 ಬ್ಯಾಗ್"},"bags":2,"loose_kg":0}],"schedule":[]}}`

type fixture struct {
	server   *httptest.Server
	hits     int32
	mu       sync.Mutex
	lastBody []byte
	out      bytes.Buffer
	errOut   bytes.Buffer
	service  *SendProcessor
	dir      string
}

func newFixture(t *testing.T, status int, reply string) *fixture {
	t.Helper()

	f := &fixture{dir: t.TempDir()}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.hits, 1)
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.lastBody = body
		f.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(f.server.Close)

	settings := configuration.Default().AdvisoryClientSettings
	settings.Targets[configuration.LocalTarget] = f.server.URL
	f.service = NewSendProcessor(
		clients.NewClientProvider(settings, zap.NewNop()),
		payloadreaderservice.NewPayloadReader(cache.NewCache(0)),
		&f.out,
		&f.errOut,
		zap.NewNop())

	return f
}

func (f *fixture) writePayload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, "test_payload.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSendWritesBodyVerbatim(t *testing.T) {
	f := newFixture(t, http.StatusOK, advisoryReply)
	payload := `{"crop": "Paddy", "lat": 13.3409, "lon": 74.7421}`

	err := f.service.Send(context.Background(), SendOptions{PayloadPath: f.writePayload(t, payload)})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&f.hits))
	f.mu.Lock()
	assert.Equal(t, payload, string(f.lastBody))
	f.mu.Unlock()
	assert.Equal(t, advisoryReply, f.out.String())
}

func TestSendNonSuccessStatusStillSucceeds(t *testing.T) {
	reply := `{"status":"error","message":"No JSON payload provided"}`
	f := newFixture(t, http.StatusBadRequest, reply)

	err := f.service.Send(context.Background(), SendOptions{PayloadPath: f.writePayload(t, "null")})
	require.NoError(t, err)
	assert.Equal(t, reply, f.out.String())
}

func TestSendMissingPayloadMakesNoRequest(t *testing.T) {
	f := newFixture(t, http.StatusOK, advisoryReply)

	err := f.service.Send(context.Background(), SendOptions{PayloadPath: filepath.Join(f.dir, "test_payload.json")})
	require.Error(t, err)

	assert.Equal(t, exitcodes.ReadError, probeerrors.ExitCode(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&f.hits))
	assert.Empty(t, f.out.String())
}

func TestSendUnreachableWritesNothing(t *testing.T) {
	f := newFixture(t, http.StatusOK, advisoryReply)
	deadUrl := f.server.URL
	f.server.Close()

	err := f.service.Send(context.Background(), SendOptions{PayloadPath: f.writePayload(t, "{}"), Url: deadUrl})
	require.Error(t, err)

	assert.Equal(t, exitcodes.CouldNotConnect, probeerrors.ExitCode(err))
	assert.Empty(t, f.out.String())
}

func TestSendPrettyAndExport(t *testing.T) {
	f := newFixture(t, http.StatusOK, advisoryReply)
	exportDir := filepath.Join(f.dir, "export")

	err := f.service.Send(context.Background(), SendOptions{
		PayloadPath: f.writePayload(t, "{}"),
		Pretty:      true,
		Export:      true,
		ExportDir:   exportDir,
	})
	require.NoError(t, err)

	assert.Contains(t, f.out.String(), "Urea")
	assert.NotContains(t, f.out.String(), `"shopping_list"`)
	assert.Contains(t, f.errOut.String(), "Your file has been saved to")

	files, err := filepath.Glob(filepath.Join(exportDir, "advisory_paddy_*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestSendPrettyFallsBackToRawBody(t *testing.T) {
	f := newFixture(t, http.StatusBadGateway, "<html>bad gateway</html>")

	err := f.service.Send(context.Background(), SendOptions{PayloadPath: f.writePayload(t, "{}"), Pretty: true})
	require.NoError(t, err)
	assert.Equal(t, "<html>bad gateway</html>", f.out.String())
}
