package health

// SimpleCheck reports healthy whenever it runs. Used for liveness, where
// answering at all is the signal.
func SimpleCheck() CheckFunc {
	return func() Check {
		return Check{Status: StatusHealthy, Message: "alive"}
	}
}

// DatabaseCheck verifies Postgres connectivity through ping.
func DatabaseCheck(ping func() error) CheckFunc {
	return func() Check {
		if err := ping(); err != nil {
			return Check{Status: StatusUnhealthy, Message: err.Error()}
		}
		return Check{Status: StatusHealthy, Message: "connected"}
	}
}

// SpatialIndexCheck inspects the nearest-neighbor index. A server with zero
// indexed floors still answers routing requests through the linear
// fallback, so an empty index is degraded rather than unhealthy.
func SpatialIndexCheck(getState func() (indexedFloors, indexedNodes int)) CheckFunc {
	return func() Check {
		floors, nodes := getState()

		check := Check{
			Status:  StatusHealthy,
			Message: "index ready",
			Details: map[string]any{
				"indexed_floors": floors,
				"indexed_nodes":  nodes,
			},
		}
		if floors == 0 {
			check.Status = StatusDegraded
			check.Message = "no floors indexed, using linear fallback"
		}
		return check
	}
}

// MemoryCheck watches the process heap. Allocation above ninety percent of
// what the runtime has reserved degrades the report; the big consumer here
// is the per-floor spatial index.
func MemoryCheck(usage func() (alloc, sys uint64)) CheckFunc {
	return func() Check {
		alloc, sys := usage()

		check := Check{
			Status:  StatusHealthy,
			Message: "heap within limits",
			Details: map[string]any{
				"alloc_bytes": alloc,
				"sys_bytes":   sys,
			},
		}
		if sys > 0 && float64(alloc)/float64(sys) > 0.9 {
			check.Status = StatusDegraded
			check.Message = "heap near reserved limit"
		}
		return check
	}
}
