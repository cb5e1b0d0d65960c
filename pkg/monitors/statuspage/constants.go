package statuspage

import "time"

// API configuration constants
const (
	// DefaultAPIURL is the default status page API base
	DefaultAPIURL = "https://discordstatus.com/api/v2"

	// IncidentsPath is appended to the API base to list incidents
	IncidentsPath = "/incidents.json"

	// DefaultHTTPTimeout is the default timeout for a single incident fetch
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultCheckInterval is the default interval for incident checks
	DefaultCheckInterval = 5 * time.Minute

	// DefaultReconcileTimeout bounds the store and sink calls for one incident.
	// It also bounds how long shutdown waits for in-flight work.
	DefaultReconcileTimeout = 30 * time.Second
)

// Incident statuses
const (
	StatusInvestigating = "investigating"
	StatusIdentified    = "identified"
	StatusMonitoring    = "monitoring"
	StatusResolved      = "resolved"
	StatusPostmortem    = "postmortem"
)

// Incident impacts
const (
	ImpactNone     = "none"
	ImpactMinor    = "minor"
	ImpactMajor    = "major"
	ImpactCritical = "critical"
)

// HTTP status codes
const (
	HTTPStatusOK = 200
)

// Error messages
const (
	ErrMissingConfig = "missing required configuration"
	ErrHTTPRequest   = "HTTP request failed"
	ErrIncidentFetch = "failed to fetch incidents"
	ErrIncidentParse = "failed to parse incident data"
	ErrStoreLookup   = "failed to look up incident record"
	ErrStoreWrite    = "failed to persist incident record"
	ErrSend          = "failed to send incident message"
	ErrEdit          = "failed to edit incident message"
)
