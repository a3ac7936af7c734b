package models

import (
	"net/http"
	"time"
)

// AdvisoryResult is the untouched reply to a single advisory post.
type AdvisoryResult struct {
	Url        string
	StatusCode int
	Header     http.Header
	Body       []byte
	Latency    time.Duration
}

func (r *AdvisoryResult) IsSuccessStatus() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
