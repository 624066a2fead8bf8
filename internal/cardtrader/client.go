// Package cardtrader provides a client for the CardTrader marketplace API.
package cardtrader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/binder/internal/model"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public v2 API root.
const DefaultBaseURL = "https://api.cardtrader.com/api/v2"

// APIError is returned for any non-2xx response.
type APIError struct {
	Path       string
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cardtrader API error: %s: %d - %s", e.Path, e.StatusCode, e.Body)
}

// Client implements the inventory, expansion and blueprint collaborators
// against the CardTrader HTTP API.
type Client struct {
	httpClient *http.Client
	limiter    *rateLimiter
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRequestsPerMinute enables client-side rate limiting.
func WithRequestsPerMinute(rpm int) Option {
	return func(c *Client) {
		if rpm > 0 {
			c.limiter = newRateLimiter(rpm)
		}
	}
}

// NewClient creates a client that authenticates every request with token.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("cardtrader token is required")
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = 30 * time.Second

	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Close releases the rate limiter, if any.
func (c *Client) Close() {
	if c.limiter != nil {
		c.limiter.Close()
	}
}

// ExportProducts fetches the full inventory export. Numbers are decoded as
// json.Number so prices keep their exact integer value.
func (c *Client) ExportProducts(ctx context.Context) ([]any, error) {
	var products []any
	if err := c.get(ctx, "/products/export", &products); err != nil {
		return nil, fmt.Errorf("failed to export products: %w", err)
	}
	return products, nil
}

type expansionResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	ID     int64  `json:"id"`
	GameID int    `json:"game_id"`
}

// Expansions fetches every expansion across all games.
func (c *Client) Expansions(ctx context.Context) ([]model.Expansion, error) {
	var resp []expansionResponse
	if err := c.get(ctx, "/expansions", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch expansions: %w", err)
	}

	expansions := make([]model.Expansion, 0, len(resp))
	for _, e := range resp {
		expansions = append(expansions, model.Expansion{
			ID:     model.ExpansionID(e.ID),
			GameID: e.GameID,
			Code:   e.Code,
			Name:   e.Name,
		})
	}
	return expansions, nil
}

type blueprintResponse struct {
	ExpansionID *int64 `json:"expansion_id"`
	ID          int64  `json:"id"`
}

// BlueprintExpansion returns the expansion a blueprint belongs to.
func (c *Client) BlueprintExpansion(ctx context.Context, id model.BlueprintID) (model.ExpansionID, error) {
	var resp blueprintResponse
	if err := c.get(ctx, "/blueprints/"+id.String(), &resp); err != nil {
		return 0, fmt.Errorf("failed to fetch blueprint %s: %w", id, err)
	}
	if resp.ExpansionID == nil {
		return 0, fmt.Errorf("blueprint %s has no expansion_id", id)
	}
	return model.ExpansionID(*resp.ExpansionID), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("CardTrader request",
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Path: path, StatusCode: resp.StatusCode, Body: string(body)}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
