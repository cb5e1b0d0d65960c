package statuspage

import (
	"fmt"
	"strings"

	"github.com/redhat-appstudio/statuspage-mirror/pkg/integrations"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tierRule maps an incident to a tier when match returns true.
type tierRule struct {
	tier  integrations.Tier
	match func(*Incident) bool
}

// tierRules are evaluated in order; the first match wins.
var tierRules = []tierRule{
	{integrations.TierResolved, func(i *Incident) bool { return i.IsResolved() }},
	{integrations.TierCritical, func(i *Incident) bool { return i.Impact == ImpactCritical }},
	{integrations.TierMajor, func(i *Incident) bool { return i.Impact == ImpactMajor }},
	{integrations.TierMinor, func(i *Incident) bool { return i.Impact == ImpactMinor }},
}

// TierFor returns the severity tier of an incident.
func TierFor(incident *Incident) integrations.Tier {
	for _, rule := range tierRules {
		if rule.match(incident) {
			return rule.tier
		}
	}
	return integrations.TierNeutral
}

// FormatIncident renders an incident as a chat message.
// Updates are listed newest first; the incident itself is not modified.
func FormatIncident(incident *Incident) integrations.Message {
	description := []string{fmt.Sprintf("• Impact: %s", incident.Impact)}
	if names := incident.ComponentNames(); len(names) > 0 {
		description = append(description, fmt.Sprintf("• Affected Components: %s", strings.Join(names, ", ")))
	}

	// Casers keep state, so each call gets its own.
	caser := cases.Title(language.English)

	updates := incident.IncidentUpdates
	sections := make([]integrations.Section, 0, len(updates))
	for idx := len(updates) - 1; idx >= 0; idx-- {
		update := updates[idx]
		sections = append(sections, integrations.Section{
			Heading: fmt.Sprintf("%s (<t:%d:R>)", caser.String(update.Status), update.CreatedAt.Unix()),
			Body:    update.Body,
		})
	}

	return integrations.Message{
		Title:       incident.Name,
		URL:         incident.Shortlink,
		Tier:        TierFor(incident),
		Timestamp:   incident.StartedAt,
		Footer:      incident.ID,
		Description: strings.Join(description, "\n"),
		Sections:    sections,
	}
}
