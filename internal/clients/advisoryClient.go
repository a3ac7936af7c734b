package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/RobsonDevCode/growmate-probe/internal/clients/models"
	"github.com/RobsonDevCode/growmate-probe/internal/configuration"
	exitcodes "github.com/RobsonDevCode/growmate-probe/internal/constants/exitCodes"
	probeerrors "github.com/RobsonDevCode/growmate-probe/internal/probeErrors"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const jsonContentType = "application/json"

type AdvisoryClientService interface {
	SendAdvisory(ctx context.Context, payload []byte) (*models.AdvisoryResult, error)
	CheckHealth(ctx context.Context) (models.HealthResponse, error)
	AdvisoryUrl() string
}

type AdvisoryClient struct {
	client       *http.Client
	cb           *gobreaker.CircuitBreaker
	baseUrl      *url.URL
	advisoryPath string
	healthPath   string
	logger       *zap.Logger
}

func NewAdvisoryClient(settings configuration.AdvisoryClientSettings, baseUrl *url.URL, logger *zap.Logger) *AdvisoryClient {
	client := &http.Client{
		Timeout: settings.Timeout(),
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	cbSettings := gobreaker.Settings{
		Name:        "advisory-client",
		MaxRequests: 5,
		Interval:    3 * time.Second,
		Timeout:     20 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &AdvisoryClient{
		client:       client,
		cb:           gobreaker.NewCircuitBreaker(cbSettings),
		baseUrl:      baseUrl,
		advisoryPath: settings.AdvisoryPath,
		healthPath:   settings.HealthPath,
		logger:       logger,
	}
}

func (c *AdvisoryClient) AdvisoryUrl() string {
	return c.baseUrl.JoinPath(c.advisoryPath).String()
}

// SendAdvisory posts payload verbatim. Any http status is a result, only
// transport failures are errors.
func (c *AdvisoryClient) SendAdvisory(ctx context.Context, payload []byte) (*models.AdvisoryResult, error) {
	endpoint := c.AdvisoryUrl()

	cbResult, err := c.cb.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, probeerrors.New(exitcodes.UrlMalformed, fmt.Errorf("failed to create http request: %w", err))
		}

		request.Header.Set("Content-Type", jsonContentType)

		c.logger.Debug("sending advisory request", zap.String("url", endpoint), zap.Int("bytes", len(payload)))
		start := time.Now()
		response, err := c.client.Do(request)
		if err != nil {
			return nil, classifyTransportError(endpoint, err)
		}
		defer response.Body.Close()

		body, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, classifyReadError(endpoint, err)
		}

		latency := time.Since(start)
		c.logger.Debug("advisory response received",
			zap.Int("status", response.StatusCode),
			zap.Duration("latency", latency))

		return &models.AdvisoryResult{
			Url:        endpoint,
			StatusCode: response.StatusCode,
			Header:     response.Header,
			Body:       body,
			Latency:    latency,
		}, nil
	})
	if err != nil {
		return nil, breakerError(err)
	}

	result, ok := cbResult.(*models.AdvisoryResult)
	if !ok {
		return nil, fmt.Errorf("unexpected response type when converting response")
	}

	return result, nil
}

func (c *AdvisoryClient) CheckHealth(ctx context.Context) (models.HealthResponse, error) {
	endpoint := c.baseUrl.JoinPath(c.healthPath).String()

	cbResult, err := c.cb.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, probeerrors.New(exitcodes.UrlMalformed, fmt.Errorf("failed to create http request: %w", err))
		}

		request.Header.Set("Accept", jsonContentType)

		response, err := c.client.Do(request)
		if err != nil {
			return nil, classifyTransportError(endpoint, err)
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return nil, handleAdvisoryClientError(response)
		}

		var health models.HealthResponse
		if err := json.NewDecoder(response.Body).Decode(&health); err != nil {
			return nil, fmt.Errorf("failed to decode health response: %w", err)
		}

		return health, nil
	})
	if err != nil {
		return models.HealthResponse{}, breakerError(err)
	}

	health, ok := cbResult.(models.HealthResponse)
	if !ok {
		return models.HealthResponse{}, fmt.Errorf("unexpected response type when converting response")
	}

	return health, nil
}

func (c *AdvisoryClient) Close() {
	c.client.CloseIdleConnections()
}

func classifyTransportError(endpoint string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return probeerrors.New(exitcodes.OperationTimedOut, fmt.Errorf("request to %s timed out: %w", endpoint, err))
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return probeerrors.New(exitcodes.CouldNotResolve, fmt.Errorf("could not resolve host for %s: %w", endpoint, err))
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return probeerrors.New(exitcodes.CouldNotConnect, fmt.Errorf("failed to connect to %s: %w", endpoint, err))
	}

	return fmt.Errorf("client response error: %w", err)
}

// classifyReadError covers a timeout that fires after the headers arrived,
// which net/http reports from the body reader rather than as a *url.Error.
func classifyReadError(endpoint string, err error) error {
	var timeoutErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &timeoutErr) && timeoutErr.Timeout()) {
		return probeerrors.New(exitcodes.OperationTimedOut, fmt.Errorf("reading response from %s timed out: %w", endpoint, err))
	}

	return fmt.Errorf("error reading advisory response body: %w", err)
}

func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return probeerrors.New(exitcodes.CouldNotConnect, fmt.Errorf("advisory api unavailable: %w", err))
	}

	return err
}

func handleAdvisoryClientError(response *http.Response) error {
	var clientError models.AdvisoryResponse
	if err := json.NewDecoder(response.Body).Decode(&clientError); err != nil {
		return fmt.Errorf("client response error status: %d", response.StatusCode)
	}

	if failure := clientError.Failure(); failure != "" {
		return fmt.Errorf("client response error status: %d, %s", response.StatusCode, failure)
	}

	return fmt.Errorf("client response error status: %d", response.StatusCode)
}
