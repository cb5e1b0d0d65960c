package statuspage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redhat-appstudio/statuspage-mirror/pkg/logger"

	"github.com/goccy/go-json"
)

// Client handles HTTP communication with a statuspage.io v2 API.
// The public incidents endpoint needs no authentication.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a status page client for the given API base.
// Empty base and non-positive timeout fall back to the defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// GetIncidents fetches the incident list, in the order the API delivers it.
// Any transport error, non-200 status or malformed body is returned as an error.
func (c *Client) GetIncidents(ctx context.Context) ([]Incident, error) {
	url := c.baseURL + IncidentsPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrHTTPRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != HTTPStatusOK {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var incidentList IncidentList
	if err := json.Unmarshal(body, &incidentList); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrIncidentParse, err)
	}

	logger.Debugf("Fetched %d incidents from %s", len(incidentList.Incidents), incidentList.Page.Name)

	return incidentList.Incidents, nil
}
