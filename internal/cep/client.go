// Package cep provides a client for a ViaCEP-compatible postal code
// directory and a validator used before any freight intention is persisted.
package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fretehub/fretehub/pkg/logging"
)

// Address is a postal code resolved by the directory.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	NotFound     bool   `json:"erro"`
}

// Client is an HTTP client for the postal code directory.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new directory client.
// baseURL should be the directory root (e.g., "https://viacep.com.br").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Lookup resolves a postal code to an address. The code must already be
// normalized to 8 digits. Returns ErrNotFound when the directory reports
// the code unknown.
func (c *Client) Lookup(ctx context.Context, code string) (*Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("cep: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep: lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cep: directory returned status %d", resp.StatusCode)
	}

	var addr Address
	if err := json.NewDecoder(resp.Body).Decode(&addr); err != nil {
		return nil, fmt.Errorf("cep: decode response: %w", err)
	}

	if addr.NotFound {
		c.logger.Info("CEP not found in directory", "cep", code)
		return nil, ErrNotFound
	}

	return &addr, nil
}

// Normalize strips everything but digits from a raw postal code input.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
