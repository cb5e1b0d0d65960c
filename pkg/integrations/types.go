package integrations

import (
	"context"
	"fmt"
	"time"
)

// Tier is the severity bucket a message is rendered with.
type Tier string

const (
	TierResolved Tier = "resolved"
	TierCritical Tier = "critical"
	TierMajor    Tier = "major"
	TierMinor    Tier = "minor"
	TierNeutral  Tier = "neutral"
)

// Message is the sink-neutral rendering of an incident.
type Message struct {
	// Title is the incident name
	Title string

	// URL links back to the public incident page
	URL string

	// Tier selects the accent color
	Tier Tier

	// Timestamp is when the incident started
	Timestamp time.Time

	// Footer carries the incident id
	Footer string

	// Description holds the impact and affected components lines
	Description string

	// Sections are the incident updates, newest first
	Sections []Section
}

// Section is one titled block of a message.
type Section struct {
	Heading string
	Body    string
}

// MessageSink posts and edits rendered messages in a remote channel.
type MessageSink interface {
	Send(ctx context.Context, message Message) (string, error)
	Edit(ctx context.Context, messageID string, message Message) (string, error)
}

// APIError is returned when the remote chat API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord API returned error status %d: %s", e.StatusCode, e.Message)
}

// DiscordConfig holds the webhook credentials and client settings.
type DiscordConfig struct {
	WebhookID      string
	WebhookToken   string
	APIURL         string
	Username       string
	AvatarURL      string
	TimeoutSeconds int
}

// DiscordEmbed follows the Discord embed object.
type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
}

// DiscordEmbedFooter is the footer block of an embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

// DiscordEmbedField is a single name/value field of an embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// DiscordWebhookPayload is the body of execute and edit webhook requests.
type DiscordWebhookPayload struct {
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Embeds    []DiscordEmbed `json:"embeds"`
}

// DiscordMessage is the subset of the message object returned by Discord.
type DiscordMessage struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	WebhookID string `json:"webhook_id"`
}
