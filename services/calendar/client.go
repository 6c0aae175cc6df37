// Package calendar talks to the external calendar backend. The backend owns
// event storage and conflicts; this client only speaks its fixed contract.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"folio/models"
)

// Event is a scheduled calendar entry as returned by the backend.
type Event struct {
	ID    string    `json:"event_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Client is the calendar collaborator.
type Client interface {
	CreateEvent(ctx context.Context, call models.RepairedCall) (*Event, error)
	ListEvents(ctx context.Context, from, to time.Time) ([]Event, error)
}

// HTTPClient calls the calendar backend over HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the backend at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateEvent books a meeting. The call must already be repaired; this layer
// does no validation of its own.
func (c *HTTPClient) CreateEvent(ctx context.Context, call models.RepairedCall) (*Event, error) {
	payload, err := json.Marshal(call)
	if err != nil {
		return nil, fmt.Errorf("marshal create-event request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/events", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("calendar service returned status %d", resp.StatusCode)
	}

	var event Event
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return nil, fmt.Errorf("decode create-event response: %w", err)
	}
	return &event, nil
}

// ListEvents returns events within [from, to].
func (c *HTTPClient) ListEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	q := url.Values{}
	q.Set("from", from.Format(time.RFC3339))
	q.Set("to", to.Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar service returned status %d", resp.StatusCode)
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode list-events response: %w", err)
	}
	return events, nil
}
