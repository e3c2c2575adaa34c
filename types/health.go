package types

// Values reported by the gateway health check.
const (
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"

	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
	DatabaseError        = "error"
)

// HealthStatus is the gateway's report on store reachability.
type HealthStatus struct {
	Status       string `json:"status"`
	Database     string `json:"database"`
	DatabaseName string `json:"database_name"`
	Error        string `json:"error,omitempty"`
	Timestamp    string `json:"timestamp"`

	// Filled in by the health service, not the store.
	Version string `json:"version,omitempty"`
	Redis   string `json:"redis,omitempty"`
}

// Healthy reports whether the store answered the health check.
func (h HealthStatus) Healthy() bool {
	return h.Status == HealthHealthy
}
