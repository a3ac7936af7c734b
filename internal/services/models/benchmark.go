package servicemodels

import "time"

type Verdict string

const (
	VerdictExtremelyFast Verdict = "EXTREMELY FAST (<1ms)"
	VerdictFast          Verdict = "FAST (<10ms)"
	VerdictSlow          Verdict = "SLOW (>10ms)"
)

type BenchmarkReport struct {
	Url         string
	Requests    int
	Failures    int
	Concurrency int
	TotalTime   time.Duration
	AvgMs       float64
	P50Ms       float64
	P99Ms       float64
	Verdict     Verdict
}
