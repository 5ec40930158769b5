// Package client is a Go client for the freight lead-capture backend plus
// the quote form flow built on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fretehub/fretehub/internal/cep"
	"github.com/fretehub/fretehub/pkg/logging"
)

// Intention is the backend's freight intention resource.
type Intention struct {
	ID           string  `json:"id"`
	ZipcodeStart string  `json:"zipcode_start"`
	ZipcodeEnd   string  `json:"zipcode_end"`
	LeadID       *string `json:"lead_id,omitempty"`
}

// Lead is the backend's lead resource.
type Lead struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client is an HTTP client for the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new backend client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logging.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CreateIntention registers an origin/destination pair with the backend.
func (c *Client) CreateIntention(ctx context.Context, zipcodeStart, zipcodeEnd string) (*Intention, error) {
	payload := map[string]string{
		"zipcode_start": cep.Normalize(zipcodeStart),
		"zipcode_end":   cep.Normalize(zipcodeEnd),
	}

	var intention Intention
	if err := c.post(ctx, "/intention", payload, http.StatusCreated, &intention); err != nil {
		return nil, fmt.Errorf("client: create intention: %w", err)
	}
	return &intention, nil
}

// CreateLead registers a lead with the backend.
func (c *Client) CreateLead(ctx context.Context, name, email string) (*Lead, error) {
	payload := map[string]string{"name": name, "email": email}

	var lead Lead
	if err := c.post(ctx, "/lead", payload, http.StatusCreated, &lead); err != nil {
		return nil, fmt.Errorf("client: create lead: %w", err)
	}
	return &lead, nil
}

// AssociateLead attaches an existing lead to an existing intention.
func (c *Client) AssociateLead(ctx context.Context, intentionID, leadID string) error {
	payload := map[string]string{"lead_id": leadID}

	req, err := c.newRequest(ctx, http.MethodPut, "/intention/"+intentionID, payload)
	if err != nil {
		return fmt.Errorf("client: associate lead: %w", err)
	}
	if err := c.do(req, http.StatusOK, nil); err != nil {
		return fmt.Errorf("client: associate lead: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any, wantStatus int, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	return c.do(req, wantStatus, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, wantStatus int, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
