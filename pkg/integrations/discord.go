package integrations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/redhat-appstudio/statuspage-mirror/pkg/logger"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Embed colors per tier
const (
	ColorGreen  = 0x57F287
	ColorRed    = 0xED4245
	ColorOrange = 0xE67E22
	ColorYellow = 0xFEE75C
	ColorBlack  = 0x23272A
)

// Discord embed limits
const (
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	maxFieldNameLength   = 256
	maxFieldValueLength  = 1024
	maxFooterLength      = 2048
	maxFields            = 25

	// maxEmbedLength caps title, description, footer and all field text combined
	maxEmbedLength = 6000
)

const (
	defaultDiscordAPIURL  = "https://discord.com/api/v10"
	defaultTimeoutSeconds = 10

	// 5 requests per 2 seconds matches the webhook bucket Discord advertises.
	requestsPerWindow = 5
	requestWindow     = 2 * time.Second

	// emptyFieldValue keeps Discord from rejecting fields without a value
	emptyFieldValue = "\u200b"
	truncationMark  = "\u2026"
)

// DiscordIntegration posts incident messages through a Discord webhook.
type DiscordIntegration struct {
	name string

	webhookID    string
	webhookToken string
	apiURL       string
	username     string
	avatarURL    string

	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewDiscordIntegration creates a Discord webhook client.
// Webhook id and token are required.
func NewDiscordIntegration(config DiscordConfig) (*DiscordIntegration, error) {
	if config.WebhookID == "" || config.WebhookToken == "" {
		return nil, errors.New("discord webhook id and token are required")
	}

	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = defaultTimeoutSeconds
	}

	apiURL := strings.TrimRight(config.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultDiscordAPIURL
	}

	return &DiscordIntegration{
		name:         "discord",
		webhookID:    config.WebhookID,
		webhookToken: config.WebhookToken,
		apiURL:       apiURL,
		username:     config.Username,
		avatarURL:    config.AvatarURL,
		httpClient:   &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second},
		limiter:      rate.NewLimiter(rate.Every(requestWindow/requestsPerWindow), requestsPerWindow),
	}, nil
}

// Name returns the integration name.
func (d *DiscordIntegration) Name() string {
	return d.name
}

// Send posts a new webhook message and returns its id.
func (d *DiscordIntegration) Send(ctx context.Context, message Message) (string, error) {
	payload := DiscordWebhookPayload{
		Username:  d.username,
		AvatarURL: d.avatarURL,
		Embeds:    []DiscordEmbed{ToEmbed(message)},
	}

	url := fmt.Sprintf("%s/webhooks/%s/%s?wait=true", d.apiURL, d.webhookID, d.webhookToken)
	sent, err := d.do(ctx, http.MethodPost, url, payload)
	if err != nil {
		return "", fmt.Errorf("failed to send discord message: %w", err)
	}
	if sent.ID == "" {
		return "", errors.New("failed to send discord message: response has no message id")
	}

	logger.Debugf("Discord message %s sent for %s", sent.ID, message.Footer)
	return sent.ID, nil
}

// Edit replaces the embed of an existing webhook message. The returned id is
// the one Discord reports, or messageID when the response omits it.
func (d *DiscordIntegration) Edit(ctx context.Context, messageID string, message Message) (string, error) {
	if messageID == "" {
		return "", errors.New("failed to edit discord message: message id is required")
	}

	payload := DiscordWebhookPayload{
		Embeds: []DiscordEmbed{ToEmbed(message)},
	}

	url := fmt.Sprintf("%s/webhooks/%s/%s/messages/%s", d.apiURL, d.webhookID, d.webhookToken, messageID)
	edited, err := d.do(ctx, http.MethodPatch, url, payload)
	if err != nil {
		return "", fmt.Errorf("failed to edit discord message %s: %w", messageID, err)
	}

	logger.Debugf("Discord message %s edited for %s", messageID, message.Footer)
	if edited.ID == "" {
		return messageID, nil
	}
	return edited.ID, nil
}

// do paces, sends and decodes one webhook request.
func (d *DiscordIntegration) do(ctx context.Context, method, url string, payload DiscordWebhookPayload) (*DiscordMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debugf("Discord %s %s", method, d.redact(url))

	resp, err := d.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the token
		return nil, fmt.Errorf("request failed: %s", d.redact(err.Error()))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	var message DiscordMessage
	if len(respBody) == 0 {
		return &message, nil
	}
	if err := json.Unmarshal(respBody, &message); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &message, nil
}

func (d *DiscordIntegration) redact(s string) string {
	return strings.ReplaceAll(s, d.webhookToken, "[REDACTED]")
}

// errorMessage extracts the message of a Discord error body, falling back to the raw text.
func errorMessage(body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		if apiErr.Code != 0 {
			return fmt.Sprintf("%s (code %d)", apiErr.Message, apiErr.Code)
		}
		return apiErr.Message
	}
	return strings.TrimSpace(string(body))
}

// ColorForTier maps a tier to its embed color; unknown tiers are black.
func ColorForTier(tier Tier) int {
	switch tier {
	case TierResolved:
		return ColorGreen
	case TierCritical:
		return ColorRed
	case TierMajor:
		return ColorOrange
	case TierMinor:
		return ColorYellow
	default:
		return ColorBlack
	}
}

// ToEmbed converts a message to a Discord embed, enforcing Discord's size limits.
// Sections beyond the field limit or the total length budget are dropped from
// the end, so the newest are kept.
func ToEmbed(message Message) DiscordEmbed {
	embed := DiscordEmbed{
		Title: truncate(message.Title, maxTitleLength),
		URL:   message.URL,
		Color: ColorForTier(message.Tier),
	}

	if !message.Timestamp.IsZero() {
		embed.Timestamp = message.Timestamp.UTC().Format(time.RFC3339)
	}

	used := utf8.RuneCountInString(embed.Title)
	if message.Footer != "" {
		embed.Footer = &DiscordEmbedFooter{Text: truncate(message.Footer, maxFooterLength)}
		used += utf8.RuneCountInString(embed.Footer.Text)
	}

	embed.Description = truncate(message.Description, min(maxDescriptionLength, maxEmbedLength-used))
	used += utf8.RuneCountInString(embed.Description)

	sections := message.Sections
	if len(sections) > maxFields {
		sections = sections[:maxFields]
	}

	// Sections arrive newest first; the oldest are dropped once the budget is spent.
	budget := maxEmbedLength - used
	for _, section := range sections {
		name := orPlaceholder(truncate(section.Heading, maxFieldNameLength))
		value := orPlaceholder(truncate(section.Body, maxFieldValueLength))
		nameLen := utf8.RuneCountInString(name)
		size := nameLen + utf8.RuneCountInString(value)

		if size > budget {
			// The newest section is shortened rather than dropped.
			if len(embed.Fields) == 0 && budget > nameLen {
				embed.Fields = append(embed.Fields, DiscordEmbedField{
					Name:  name,
					Value: truncate(value, budget-nameLen),
				})
			}
			break
		}

		budget -= size
		embed.Fields = append(embed.Fields, DiscordEmbedField{Name: name, Value: value})
	}

	return embed
}

// truncate shortens s to at most limit runes, marking the cut.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-utf8.RuneCountInString(truncationMark)]) + truncationMark
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return emptyFieldValue
	}
	return s
}
