package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/rankr/internal/domain/model"
	"github.com/okian/rankr/internal/domain/types"
)

// Client talks to the rankr session API.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// CatalogInfo is the GET /catalog body.
type CatalogInfo struct {
	Items    []string `json:"items"`
	MinItems int      `json:"min_items"`
	MaxItems int      `json:"max_items"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type voteBody struct {
	Left   string `json:"left"`
	Right  string `json:"right"`
	Choice string `json:"choice"`
}

type exportBody struct {
	Path string `json:"path"`
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, nil, http.StatusOK); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	return nil
}

// Catalog fetches the item catalog.
func (c *Client) Catalog(ctx context.Context) (CatalogInfo, error) {
	var out CatalogInfo
	err := c.do(ctx, http.MethodGet, "/catalog", nil, &out, http.StatusOK)
	return out, err
}

// Create starts a tournament.
func (c *Client) Create(ctx context.Context, sel model.Selection) (model.Session, error) {
	var out model.Session
	err := c.do(ctx, http.MethodPost, "/sessions", sel, &out, http.StatusCreated)
	return out, err
}

// Vote records choice for pair.
func (c *Client) Vote(ctx context.Context, id string, pair types.PairView, choice string) (model.Session, error) {
	var out model.Session
	body := voteBody{Left: pair.Left, Right: pair.Right, Choice: choice}
	err := c.do(ctx, http.MethodPost, "/sessions/"+id+"/votes", body, &out, http.StatusOK)
	return out, err
}

// Back undoes the last vote.
func (c *Client) Back(ctx context.Context, id string) (model.Session, error) {
	var out model.Session
	err := c.do(ctx, http.MethodPost, "/sessions/"+id+"/back", nil, &out, http.StatusOK)
	return out, err
}

// Ranking fetches the final ranking.
func (c *Client) Ranking(ctx context.Context, id string) ([]types.Entry, error) {
	var out []types.Entry
	err := c.do(ctx, http.MethodGet, "/sessions/"+id+"/ranking", nil, &out, http.StatusOK)
	return out, err
}

// Export asks the server to write the ranking file and returns its path.
func (c *Client) Export(ctx context.Context, id string) (string, error) {
	var out exportBody
	err := c.do(ctx, http.MethodPost, "/sessions/"+id+"/export", nil, &out, http.StatusOK)
	return out.Path, err
}

// Delete discards a session.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sessions/"+id, nil, nil, http.StatusNoContent)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, want int) error {
	var r io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	req.Header.Set("Accept", contentTypeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	if resp.StatusCode != want {
		var apiErr apiError
		_ = json.Unmarshal(data, &apiErr)
		return fmt.Errorf("%w: %s %s returned %d %s %s",
			ErrUnexpectedStatus, method, path, resp.StatusCode, apiErr.Code, apiErr.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}
