package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultApifyBaseURL = "https://api.apify.com"
	defaultTimeout      = 5 * time.Minute
	maxErrorBody        = 512
)

// ErrMissingToken is returned when no Apify token is configured.
var ErrMissingToken = errors.New("apify token not configured")

// ApifyClient runs Apify actors synchronously and returns their dataset items.
type ApifyClient struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewApifyClient creates a client. A nil httpClient gets a 5 minute timeout.
func NewApifyClient(token, baseURL string, httpClient *http.Client) *ApifyClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultApifyBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &ApifyClient{
		token:   strings.TrimSpace(token),
		baseURL: baseURL,
		client:  httpClient,
	}
}

// Run executes actorID with input and decodes the dataset items into out.
func (c *ApifyClient) Run(ctx context.Context, actorID string, input any, out any) error {
	if c == nil || c.token == "" {
		return ErrMissingToken
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("apify actor %s: encode input: %w", actorID, err)
	}

	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items", c.baseURL, url.PathEscape(actorID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("apify actor %s: %w", actorID, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("apify actor %s: %w", actorID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("apify actor %s: unexpected status %d: %s", actorID, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apify actor %s: decode items: %w", actorID, err)
	}
	return nil
}

func truncate(listings []Listing, rows int) []Listing {
	if rows > 0 && len(listings) > rows {
		return listings[:rows]
	}
	return listings
}
