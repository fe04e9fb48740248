package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrDuplicateChecker is returned when a checker name is registered twice.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// HealthChecker is implemented by adapters that can report their health.
type HealthChecker interface {
	// Name identifies the check in readiness responses.
	Name() string

	// Check returns nil when the component is healthy.
	Check(ctx context.Context) error
}

// HealthRegistry aggregates checks for the readiness endpoint.
type HealthRegistry interface {
	Register(checker HealthChecker) error
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus represents the overall health state.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult contains the aggregated health check results.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult contains the result of a single health check.
type CheckResult struct {
	Status   HealthStatus  `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// DefaultHealthRegistry is a thread-safe HealthRegistry.
type DefaultHealthRegistry struct {
	mu       sync.RWMutex
	checkers []HealthChecker
}

// NewHealthRegistry creates an empty registry.
func NewHealthRegistry() *DefaultHealthRegistry {
	return &DefaultHealthRegistry{}
}

// Register adds a checker. Names must be unique.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	for _, c := range r.checkers {
		if c.Name() == name {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
		}
	}

	r.checkers = append(r.checkers, checker)

	return nil
}

// CheckAll runs every registered check concurrently and waits for all of them.
// A single failing check marks the whole result unhealthy.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	checkers := make([]HealthChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	result := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checkers)),
		Timestamp: time.Now(),
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)

	for _, c := range checkers {
		g.Go(func() error {
			start := time.Now()
			err := c.Check(ctx)

			cr := &CheckResult{Status: HealthStatusHealthy, Duration: time.Since(start)}
			if err != nil {
				cr.Status = HealthStatusUnhealthy
				cr.Message = err.Error()
			}

			mu.Lock()
			defer mu.Unlock()

			result.Checks[c.Name()] = cr
			if cr.Status == HealthStatusUnhealthy {
				result.Status = HealthStatusUnhealthy
			}

			return nil
		})
	}

	_ = g.Wait()

	return result
}
