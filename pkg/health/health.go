// Package health provides Kubernetes-style liveness and readiness probes.
// Registered checks run on a background refresh loop; the HTTP endpoints
// serve the cached results so probes stay cheap under load.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc is a health check. It returns nil when the checked component is
// healthy, or an error describing the problem.
type CheckFunc func(ctx context.Context) error

// check holds one registered check and its last observed result.
type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc

	mu      sync.Mutex
	lastErr error
}

func (c *check) run(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.fn(checkCtx)

	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

func (c *check) err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Health manages liveness and readiness checks for a service.
type Health struct {
	ready atomic.Bool

	mu        sync.RWMutex
	liveness  []*check
	readiness []*check
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a Health instance. The service starts not ready; call
// SetReady(true) once initialization has finished.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a liveness check. Liveness failures mean the
// process itself is broken (goroutine leak, deadlock) and should be restarted.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, &check{name: name, timeout: timeout, fn: fn})
}

// AddReadinessCheck registers a readiness check. Readiness failures mean the
// service cannot currently serve traffic (a dependency is down) but may
// recover without a restart.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, &check{name: name, timeout: timeout, fn: fn})
}

// Start runs every check once immediately and then on the given interval
// until Stop is called or ctx is cancelled.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	runCtx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	h.done = make(chan struct{})
	checks := h.snapshot()
	done := h.done
	h.mu.Unlock()

	// The first pass runs synchronously so cached results are populated
	// before Start returns; a probe arriving right after must not see a
	// stale "ok" for a check that is already failing.
	runAll(runCtx, checks)

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				runAll(runCtx, checks)
			}
		}
	}()
}

// Stop cancels the refresh loop and waits for it to exit.
func (h *Health) Stop() {
	h.mu.Lock()
	cancel, done := h.cancel, h.done
	h.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// SetReady flips the overall readiness gate. The readiness endpoint reports
// failure whenever the gate is down, regardless of individual check results.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Health) snapshot() []*check {
	out := make([]*check, 0, len(h.liveness)+len(h.readiness))
	out = append(out, h.liveness...)
	return append(out, h.readiness...)
}

func runAll(ctx context.Context, checks []*check) {
	for _, c := range checks {
		c.run(ctx)
	}
}

// LiveEndpoint serves the liveness probe.
func (h *Health) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	checks := append([]*check(nil), h.liveness...)
	h.mu.RUnlock()

	writeStatus(w, checks, true)
}

// ReadyEndpoint serves the readiness probe.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	checks := append([]*check(nil), h.readiness...)
	h.mu.RUnlock()

	writeStatus(w, checks, h.ready.Load())
}

func writeStatus(w http.ResponseWriter, checks []*check, gate bool) {
	healthy := gate
	results := make(map[string]string, len(checks))
	for _, c := range checks {
		if err := c.err(); err != nil {
			healthy = false
			results[c.name] = err.Error()
		} else {
			results[c.name] = "ok"
		}
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": status,
		"checks": results,
	})
}
