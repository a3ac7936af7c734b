package benchmarkservice

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/RobsonDevCode/growmate-probe/internal/clients"
	payloadreaderservice "github.com/RobsonDevCode/growmate-probe/internal/services/payloadReaderService"
	servicemodels "github.com/RobsonDevCode/growmate-probe/internal/services/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRequests = 1000
	DefaultWarmup   = 10
)

type BenchmarkOptions struct {
	PayloadPath string
	Target      string
	Url         string
	Requests    int
	Warmup      int
	Concurrency int
}

// WithDefaults replaces unset or invalid counts with the ones Run uses.
func (o BenchmarkOptions) WithDefaults() BenchmarkOptions {
	if o.Requests <= 0 {
		o.Requests = DefaultRequests
	}
	if o.Warmup < 0 {
		o.Warmup = 0
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	return o
}

type BenchmarkService interface {
	Run(ctx context.Context, options BenchmarkOptions) (servicemodels.BenchmarkReport, error)
}

type BenchmarkRunner struct {
	clientProvider clients.AdvisoryClientProvider
	payloadReader  payloadreaderservice.PayloadReaderService
	logger         *zap.Logger
}

func NewBenchmarkRunner(clientProvider clients.AdvisoryClientProvider,
	payloadReader payloadreaderservice.PayloadReaderService,
	logger *zap.Logger) *BenchmarkRunner {
	return &BenchmarkRunner{
		clientProvider: clientProvider,
		payloadReader:  payloadReader,
		logger:         logger,
	}
}

// Run sends the payload Requests times after Warmup unmeasured sends.
// Latency covers every completed response, failures are transport errors
// and non 2xx statuses.
func (b *BenchmarkRunner) Run(ctx context.Context, options BenchmarkOptions) (servicemodels.BenchmarkReport, error) {
	options = options.WithDefaults()

	payload, err := b.payloadReader.ReadPayload(options.PayloadPath)
	if err != nil {
		return servicemodels.BenchmarkReport{}, err
	}

	client, err := b.clientProvider.ForTarget(options.Target, options.Url)
	if err != nil {
		return servicemodels.BenchmarkReport{}, err
	}

	for i := 0; i < options.Warmup; i++ {
		if _, err := client.SendAdvisory(ctx, payload); err != nil {
			return servicemodels.BenchmarkReport{}, fmt.Errorf("warmup request failed: %w", err)
		}
	}

	b.logger.Info("benchmark started",
		zap.String("url", client.AdvisoryUrl()),
		zap.Int("requests", options.Requests),
		zap.Int("concurrency", options.Concurrency))

	latencies := make([]float64, options.Requests)
	completed := make([]bool, options.Requests)
	var failures int32

	group, gCtx := errgroup.WithContext(ctx)
	group.SetLimit(options.Concurrency)

	start := time.Now()
	for i := 0; i < options.Requests; i++ {
		group.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			t0 := time.Now()
			result, err := client.SendAdvisory(gCtx, payload)
			elapsed := time.Since(t0)
			if err != nil {
				atomic.AddInt32(&failures, 1)
				b.logger.Debug("benchmark request failed", zap.Int("request", i), zap.Error(err))
				return nil
			}

			latencies[i] = Milliseconds(elapsed)
			completed[i] = true
			if !result.IsSuccessStatus() {
				atomic.AddInt32(&failures, 1)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return servicemodels.BenchmarkReport{}, fmt.Errorf("benchmark cancelled: %w", err)
	}
	total := time.Since(start)

	measured := make([]float64, 0, options.Requests)
	for i, done := range completed {
		if done {
			measured = append(measured, latencies[i])
		}
	}
	if len(measured) == 0 {
		return servicemodels.BenchmarkReport{}, fmt.Errorf("all %d benchmark requests failed", options.Requests)
	}

	avg := Mean(measured)
	report := servicemodels.BenchmarkReport{
		Url:         client.AdvisoryUrl(),
		Requests:    options.Requests,
		Failures:    int(atomic.LoadInt32(&failures)),
		Concurrency: options.Concurrency,
		TotalTime:   total,
		AvgMs:       avg,
		P50Ms:       Median(measured),
		P99Ms:       P99(measured),
		Verdict:     VerdictFor(avg),
	}

	b.logger.Info("benchmark finished",
		zap.Duration("total", total),
		zap.Float64("avg_ms", report.AvgMs),
		zap.Int("failures", report.Failures))

	return report, nil
}
