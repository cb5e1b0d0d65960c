package incidents

import (
	"time"

	"github.com/redhat-appstudio/statuspage-mirror/pkg/storage"
)

// IncidentResponse is one mirrored incident.
type IncidentResponse struct {
	IncidentID string    `json:"incidentID"`
	MessageID  string    `json:"messageID"`
	LastUpdate time.Time `json:"lastUpdate"`
	Resolved   bool      `json:"resolved"`
}

// ListResponse is the body of the list endpoint.
type ListResponse struct {
	Count     int                `json:"count"`
	Incidents []IncidentResponse `json:"incidents"`
}

func fromRecord(record storage.IncidentRecord) IncidentResponse {
	return IncidentResponse{
		IncidentID: record.IncidentID,
		MessageID:  record.MessageID,
		LastUpdate: record.LastUpdate.UTC(),
		Resolved:   record.Resolved,
	}
}
