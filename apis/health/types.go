package health

import "time"

// HealthResponse represents the health check response structure.
type HealthResponse struct {
	// Status is "healthy", or "unhealthy" when the incident store cannot be read
	Status string `json:"status"`

	// Timestamp is when the health check was performed
	Timestamp time.Time `json:"timestamp"`

	// Version is the server version information
	Version string `json:"version"`

	// Uptime is the server uptime duration
	Uptime string `json:"uptime"`

	// TrackedIncidents is the number of incidents with a mirrored message
	TrackedIncidents int `json:"trackedIncidents"`

	// Error explains an unhealthy status
	Error string `json:"error,omitempty"`
}
