package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

// Metrics stores application metrics
type Metrics struct {
	RequestsTotal      atomic.Uint64
	RequestsInProgress atomic.Int64
	RequestsSuccess    atomic.Uint64
	RequestsFailed     atomic.Uint64
	StartTime          time.Time

	analyses map[analysis.Kind]*AnalysisCounters
}

// AnalysisCounters track POST /api/gemini outcomes for one kind.
type AnalysisCounters struct {
	Total     atomic.Uint64
	Succeeded atomic.Uint64
	Rejected  atomic.Uint64 // validation failures
	Failed    atomic.Uint64 // model or parse failures
}

func NewMetrics() *Metrics {
	m := &Metrics{
		StartTime: time.Now(),
		analyses:  make(map[analysis.Kind]*AnalysisCounters, len(analysis.Kinds)),
	}
	for _, k := range analysis.Kinds {
		m.analyses[k] = &AnalysisCounters{}
	}
	return m
}

// Analysis returns the counters for kind, or nil for an unknown kind.
func (m *Metrics) Analysis(kind analysis.Kind) *AnalysisCounters {
	return m.analyses[kind]
}

// Snapshot returns current metrics
func (m *Metrics) Snapshot() map[string]any {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	kinds := make(map[string]any, len(m.analyses))
	for k, c := range m.analyses {
		kinds[string(k)] = map[string]uint64{
			"total":     c.Total.Load(),
			"succeeded": c.Succeeded.Load(),
			"rejected":  c.Rejected.Load(),
			"failed":    c.Failed.Load(),
		}
	}

	return map[string]any{
		"requests_total":       m.RequestsTotal.Load(),
		"requests_in_progress": m.RequestsInProgress.Load(),
		"requests_success":     m.RequestsSuccess.Load(),
		"requests_failed":      m.RequestsFailed.Load(),
		"analyses":             kinds,
		"uptime_seconds":       time.Since(m.StartTime).Seconds(),
		"memory": map[string]any{
			"alloc_bytes": mem.Alloc,
			"sys_bytes":   mem.Sys,
			"num_gc":      mem.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// Middleware tracks request metrics
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.RequestsTotal.Add(1)
		m.RequestsInProgress.Add(1)
		defer m.RequestsInProgress.Add(-1)

		wrapped := wrapWriter(w)
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			m.RequestsSuccess.Add(1)
		} else {
			m.RequestsFailed.Add(1)
		}
	})
}

// Handler returns metrics as JSON
func (m *Metrics) Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m.Snapshot())
}
