package benchmarkservice

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	cache "github.com/RobsonDevCode/growmate-probe/internal/caching"
	"github.com/RobsonDevCode/growmate-probe/internal/clients"
	"github.com/RobsonDevCode/growmate-probe/internal/clients/models"
	payloadreaderservice "github.com/RobsonDevCode/growmate-probe/internal/services/payloadReaderService"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type stubClient struct {
	calls   int32
	failAt  int32
	status  int
	payload atomic.Value
}

func (s *stubClient) SendAdvisory(ctx context.Context, payload []byte) (*models.AdvisoryResult, error) {
	call := atomic.AddInt32(&s.calls, 1)
	s.payload.Store(string(payload))
	if s.failAt > 0 && call%s.failAt == 0 {
		return nil, errors.New("connection reset by peer")
	}
	return &models.AdvisoryResult{StatusCode: s.status, Url: s.AdvisoryUrl()}, nil
}

func (s *stubClient) CheckHealth(ctx context.Context) (models.HealthResponse, error) {
	return models.HealthResponse{Status: models.StatusHealthy}, nil
}

func (s *stubClient) AdvisoryUrl() string {
	return "http://127.0.0.1:5000/api/advisory"
}

type stubProvider struct {
	client *stubClient
}

func (p stubProvider) ForTarget(target string, overrideUrl string) (clients.AdvisoryClientService, error) {
	return p.client, nil
}

func (p stubProvider) TargetNames() []string {
	return []string{"local"}
}

func newRunner(t *testing.T, client *stubClient) (*BenchmarkRunner, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test_payload.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"crop":"Paddy","sowing_date":"2026-06-15"}`), 0644))

	return NewBenchmarkRunner(stubProvider{client: client}, payloadreaderservice.NewPayloadReader(cache.NewCache(0)), zap.NewNop()), path
}

func TestRunCountsWarmupAndRequests(t *testing.T) {
	defer goleak.VerifyNone(t)

	client := &stubClient{status: http.StatusOK}
	runner, path := newRunner(t, client)

	report, err := runner.Run(context.Background(), BenchmarkOptions{PayloadPath: path, Requests: 50, Warmup: 5, Concurrency: 4})
	require.NoError(t, err)

	assert.Equal(t, int32(55), atomic.LoadInt32(&client.calls))
	assert.Equal(t, 50, report.Requests)
	assert.Equal(t, 4, report.Concurrency)
	assert.Equal(t, 0, report.Failures)
	assert.Equal(t, `{"crop":"Paddy","sowing_date":"2026-06-15"}`, client.payload.Load())
	assert.NotEmpty(t, report.Verdict)
}

func TestRunCountsFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	client := &stubClient{status: http.StatusOK, failAt: 5}
	runner, path := newRunner(t, client)

	report, err := runner.Run(context.Background(), BenchmarkOptions{PayloadPath: path, Requests: 20, Concurrency: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Failures)
}

func TestRunNonSuccessStatusIsAFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	client := &stubClient{status: http.StatusBadRequest}
	runner, path := newRunner(t, client)

	report, err := runner.Run(context.Background(), BenchmarkOptions{PayloadPath: path, Requests: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Failures)
}

func TestRunAllFailed(t *testing.T) {
	defer goleak.VerifyNone(t)

	client := &stubClient{status: http.StatusOK, failAt: 1}
	runner, path := newRunner(t, client)

	_, err := runner.Run(context.Background(), BenchmarkOptions{PayloadPath: path, Requests: 3})
	assert.ErrorContains(t, err, "all 3 benchmark requests failed")
}

func TestRunMissingPayload(t *testing.T) {
	client := &stubClient{status: http.StatusOK}
	runner, _ := newRunner(t, client)

	_, err := runner.Run(context.Background(), BenchmarkOptions{PayloadPath: filepath.Join(t.TempDir(), "nope.json")})
	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&client.calls))
}

func TestBenchmarkOptionsWithDefaults(t *testing.T) {
	got := BenchmarkOptions{PayloadPath: "test_payload.json", Requests: 0, Warmup: -3, Concurrency: 0}.WithDefaults()
	assert.Equal(t, BenchmarkOptions{PayloadPath: "test_payload.json", Requests: DefaultRequests, Warmup: 0, Concurrency: 1}, got)

	kept := BenchmarkOptions{Requests: 20, Warmup: 2, Concurrency: 4}
	assert.Equal(t, kept, kept.WithDefaults())
}
