package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	defaultCheckTimeout = 5 * time.Second

	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

// Checks maps a dependency name to its check.
type Checks map[string]CheckFunc

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check is the result of a single check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) livez(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &HealthResponse{Status: StatusHealthy})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	resp := s.runChecks(r.Context())

	status := http.StatusOK
	if resp.Status == StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// runChecks executes all checks in parallel. The engine itself is always
// checked for initialization.
func (s *Server) runChecks(ctx context.Context) *HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, s.checkTimeout)
	defer cancel()

	checks := make(Checks, len(s.checks)+1)
	for name, check := range s.checks {
		checks[name] = check
	}
	checks["translations"] = func(context.Context) error {
		if !s.tr.IsInitialized() {
			return ErrCheckFailed
		}
		return nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		results  = make(map[string]Check, len(checks))
		hasError bool
	)

	for name, check := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()

			result := Check{Status: StatusHealthy}
			if err := check(ctx); err != nil {
				result.Status = StatusUnhealthy
				result.Error = err.Error()
				s.log.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			results[name] = result
			if result.Status == StatusUnhealthy {
				hasError = true
			}
			mu.Unlock()
		}()
	}

	wg.Wait()

	status := StatusHealthy
	if hasError {
		status = StatusUnhealthy
	}
	return &HealthResponse{Status: status, Checks: results}
}
