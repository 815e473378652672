package health

import (
	"encoding/json"
	"net/http"
)

// Handler serves the full report. Degraded still answers 200 since the
// service keeps routing through fallbacks; only unhealthy returns 503.
func (c *Checker) Handler() http.HandlerFunc {
	return serveReport(c.Check, StatusDegraded)
}

// ReadinessHandler is binary: anything short of healthy means this
// instance should stop receiving traffic.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return serveReport(c.CheckReadiness, StatusHealthy)
}

// LivenessHandler is binary: anything short of healthy asks the
// orchestrator for a restart.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return serveReport(c.CheckLiveness, StatusHealthy)
}

// serveReport writes a report as JSON, answering 503 once the status is
// worse than worstOK.
func serveReport(eval func() Report, worstOK Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := eval()

		w.Header().Set("Content-Type", "application/json")
		if statusRank[report.Status] > statusRank[worstOK] {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(report)
	}
}
