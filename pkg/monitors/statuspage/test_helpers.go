package statuspage

import (
	"context"
	"net/http"
	"time"
)

// CreateTestIncident creates a test incident with a single investigating update
func CreateTestIncident(id, name, status, impact string, createdAt time.Time) *Incident {
	return &Incident{
		ID:        id,
		Name:      name,
		Status:    status,
		Impact:    impact,
		CreatedAt: createdAt,
		StartedAt: createdAt,
		Shortlink: "https://stspg.io/" + id,
		PageID:    "test-page",
		IncidentUpdates: []IncidentUpdate{
			{
				ID:         id + "-u1",
				Status:     StatusInvestigating,
				Body:       "We are investigating " + name,
				IncidentID: id,
				CreatedAt:  createdAt,
			},
		},
	}
}

// WithUpdate appends an update and moves the incident to its status
func WithUpdate(incident *Incident, status, body string, at time.Time) *Incident {
	incident.Status = status
	incident.UpdatedAt = &at
	incident.IncidentUpdates = append(incident.IncidentUpdates, IncidentUpdate{
		ID:         incident.ID + "-" + status,
		Status:     status,
		Body:       body,
		IncidentID: incident.ID,
		CreatedAt:  at,
	})
	if status == StatusResolved {
		incident.ResolvedAt = &at
	}
	return incident
}

// CreateTestIncidentList creates a test incident list with the provided incidents
func CreateTestIncidentList(incidents []Incident) *IncidentList {
	return &IncidentList{
		Page: Page{
			ID:       "test-page",
			Name:     "Test Status",
			URL:      "https://status.example.com",
			TimeZone: "Etc/UTC",
		},
		Incidents: incidents,
	}
}

// CreateTestContext creates a test context with timeout
func CreateTestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// CreateTestClient creates a test client pointed at baseURL
func CreateTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
	}
}
