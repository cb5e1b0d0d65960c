package statuspage

import "time"

// IncidentList represents the response structure of the incidents endpoint.
type IncidentList struct {
	Page      Page       `json:"page"`
	Incidents []Incident `json:"incidents"`
}

// Page describes the status page that published the incidents.
type Page struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	TimeZone  string    `json:"time_zone"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Incident represents a single incident published by a status page.
// It carries the full update history on every fetch.
type Incident struct {
	// ID is the unique identifier for this incident
	ID string `json:"id"`

	// Name is the incident title
	Name string `json:"name"`

	// Status is one of investigating, identified, monitoring, resolved, postmortem
	Status string `json:"status"`

	// Impact is one of none, minor, major, critical
	Impact string `json:"impact"`

	// CreatedAt is when the incident was created
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the last modification; null until the first change
	UpdatedAt *time.Time `json:"updated_at"`

	// MonitoringAt is when the incident entered monitoring
	MonitoringAt *time.Time `json:"monitoring_at"`

	// ResolvedAt is when the incident was resolved
	ResolvedAt *time.Time `json:"resolved_at"`

	// StartedAt is when the incident began
	StartedAt time.Time `json:"started_at"`

	// Shortlink is the public URL of the incident
	Shortlink string `json:"shortlink"`

	// PageID identifies the owning status page
	PageID string `json:"page_id"`

	// IncidentUpdates are the posted updates in chronological order
	IncidentUpdates []IncidentUpdate `json:"incident_updates"`

	// Components are the components affected by the incident
	Components []Component `json:"components"`
}

// IncidentUpdate is one posted update of an incident.
type IncidentUpdate struct {
	ID                   string            `json:"id"`
	Status               string            `json:"status"`
	Body                 string            `json:"body"`
	IncidentID           string            `json:"incident_id"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            *time.Time        `json:"updated_at"`
	DisplayAt            *time.Time        `json:"display_at"`
	AffectedComponents   []ComponentUpdate `json:"affected_components"`
	DeliverNotifications bool              `json:"deliver_notifications"`
	CustomTweet          *string           `json:"custom_tweet"`
	TweetID              *string           `json:"tweet_id"`
}

// Component is a status page component.
type Component struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Position           int       `json:"position"`
	Description        *string   `json:"description"`
	Showcase           bool      `json:"showcase"`
	StartDate          *string   `json:"start_date"`
	GroupID            *string   `json:"group_id"`
	PageID             string    `json:"page_id"`
	Group              bool      `json:"group"`
	OnlyShowIfDegraded bool      `json:"only_show_if_degraded"`
}

// ComponentUpdate records a component status transition within an update.
type ComponentUpdate struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// IsResolved returns true if the incident is resolved or has a postmortem.
func (i *Incident) IsResolved() bool {
	return i.Status == StatusResolved || i.Status == StatusPostmortem
}

// EffectiveUpdatedAt returns updated_at, falling back to created_at when it is null.
func (i *Incident) EffectiveUpdatedAt() time.Time {
	if i.UpdatedAt != nil && !i.UpdatedAt.IsZero() {
		return *i.UpdatedAt
	}
	return i.CreatedAt
}

// ComponentNames returns the affected component names in source order.
func (i *Incident) ComponentNames() []string {
	names := make([]string, 0, len(i.Components))
	for _, component := range i.Components {
		names = append(names, component.Name)
	}
	return names
}
