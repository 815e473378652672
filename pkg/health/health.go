// Package health evaluates the wayfinder process's fitness to serve. The
// full report backs /health, readiness gates load-balancer traffic on the
// database, and liveness only asserts the process still responds.
package health

import (
	"sync"
	"time"
)

// Status classifies a single check outcome or a whole report.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// statusRank orders statuses by severity; the worst check wins the report.
var statusRank = map[Status]int{
	StatusHealthy:   0,
	StatusDegraded:  1,
	StatusUnhealthy: 2,
}

func worse(a, b Status) Status {
	if statusRank[b] > statusRank[a] {
		return b
	}
	return a
}

// Check is the outcome of a single evaluation. The check's name lives in
// the report map key, not here.
type Check struct {
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	DurationMS  float64        `json:"duration_ms"`
}

// CheckFunc produces a Check when evaluated. Checks run on every health
// request, so they must be cheap; anything that can block belongs behind
// its own timeout, the way the database ping closure is built.
type CheckFunc func() Check

type namedCheck struct {
	name string
	fn   CheckFunc
}

// Checker groups the service's checks into three surfaces: the full
// report, readiness, and liveness. Registration happens once at server
// construction; evaluation is concurrent-safe after that.
type Checker struct {
	mu      sync.RWMutex
	started time.Time
	full    []namedCheck
	ready   []namedCheck
	live    []namedCheck
}

// Report is the JSON document the health endpoints serve.
type Report struct {
	Status        Status           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	UptimeSeconds float64          `json:"uptime_seconds"`
	Checks        map[string]Check `json:"checks"`
}

// NewChecker returns an empty checker; uptime counts from this call.
func NewChecker() *Checker {
	return &Checker{started: time.Now()}
}

// Register adds a check to the full health report.
func (c *Checker) Register(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.full = append(c.full, namedCheck{name, fn})
}

// RegisterReadiness adds a check that decides whether this instance should
// receive traffic.
func (c *Checker) RegisterReadiness(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = append(c.ready, namedCheck{name, fn})
}

// RegisterLiveness adds a check that decides whether the process should be
// restarted.
func (c *Checker) RegisterLiveness(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.live = append(c.live, namedCheck{name, fn})
}

// Check evaluates the full report.
func (c *Checker) Check() Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.run(c.full)
}

// CheckReadiness evaluates the readiness checks.
func (c *Checker) CheckReadiness() Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.run(c.ready)
}

// CheckLiveness evaluates the liveness checks.
func (c *Checker) CheckLiveness() Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.run(c.live)
}

// run evaluates checks in registration order and aggregates the worst
// status. A surface with no checks reports healthy.
func (c *Checker) run(checks []namedCheck) Report {
	report := Report{
		Status:        StatusHealthy,
		Timestamp:     time.Now(),
		UptimeSeconds: time.Since(c.started).Seconds(),
		Checks:        make(map[string]Check, len(checks)),
	}

	for _, nc := range checks {
		start := time.Now()
		check := nc.fn()
		check.LastChecked = start
		check.DurationMS = float64(time.Since(start).Microseconds()) / 1000

		report.Checks[nc.name] = check
		report.Status = worse(report.Status, check.Status)
	}
	return report
}
