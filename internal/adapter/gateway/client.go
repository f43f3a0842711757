// Package gateway talks to the notification delivery gateway, the service
// that actually sends email and SMS to subscribed endpoints.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hurricanecontrol/bulletin-notifier/internal/registry"
)

// Client implements registry.SubscriptionGateway over the gateway's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a gateway client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type subscribeRequest struct {
	Topic    string `json:"topic"`
	Protocol string `json:"protocol"`
	Endpoint string `json:"endpoint"`
}

// Subscribe registers an endpoint for a topic at the gateway.
func (c *Client) Subscribe(ctx context.Context, topic, protocol, endpoint string) error {
	body, err := json.Marshal(subscribeRequest{Topic: topic, Protocol: protocol, Endpoint: endpoint})
	if err != nil {
		return fmt.Errorf("encode subscribe request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/subscriptions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("subscribe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError("subscribe", resp)
	}
	return nil
}

type listResponse struct {
	Subscriptions []registry.Subscription `json:"subscriptions"`
}

// ListSubscriptions returns the gateway subscriptions for a topic.
func (c *Client) ListSubscriptions(ctx context.Context, topic string) ([]registry.Subscription, error) {
	u := c.baseURL + "/v1/subscriptions?" + url.Values{"topic": {topic}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("list subscriptions", resp)
	}

	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Subscriptions, nil
}

// Unsubscribe deletes a gateway subscription by id.
func (c *Client) Unsubscribe(ctx context.Context, id string) error {
	u := c.baseURL + "/v1/subscriptions/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unsubscribe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apiError("unsubscribe", resp)
	}
	return nil
}

func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("gateway %s: status %d: %s", op, resp.StatusCode, body)
}
