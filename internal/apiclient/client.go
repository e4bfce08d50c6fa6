package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"asset-tracker/internal/models"
)

// DefaultBaseURL is set at build time with -ldflags "-X asset-tracker/internal/apiclient.DefaultBaseURL=...".
var DefaultBaseURL = "http://localhost:3001"

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the inventory REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A nil httpClient gets a default with a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

// do sends body as JSON and decodes a 2xx response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); json.Unmarshal(raw, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	if err := c.do(ctx, http.MethodGet, "/assets", nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (c *Client) GetAsset(ctx context.Context, id int64) (*models.Asset, error) {
	var a models.Asset
	if err := c.do(ctx, http.MethodGet, idPath("/assets", id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateAsset(ctx context.Context, in *models.Asset) (*models.Asset, error) {
	var a models.Asset
	if err := c.do(ctx, http.MethodPost, "/assets", in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAsset replaces every field of asset id with in.
func (c *Client) UpdateAsset(ctx context.Context, id int64, in *models.Asset) (*models.Asset, error) {
	var a models.Asset
	if err := c.do(ctx, http.MethodPut, idPath("/assets", id), in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) DeleteAsset(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/assets", id), nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string, description *string) (*models.Category, error) {
	body := map[string]any{"name": name}
	if description != nil {
		body["description"] = *description
	}
	var cat models.Category
	if err := c.do(ctx, http.MethodPost, "/categories", body, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/categories", id), nil, nil)
}

func (c *Client) ListTodos(ctx context.Context) ([]models.Todo, error) {
	var todos []models.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) CreateTodo(ctx context.Context, text string) (*models.Todo, error) {
	var t models.Todo
	if err := c.do(ctx, http.MethodPost, "/todos", map[string]any{"text": text}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTodo sends both fields; a nil note clears the stored note.
func (c *Client) UpdateTodo(ctx context.Context, id int64, done bool, note *string) (*models.Todo, error) {
	var t models.Todo
	body := map[string]any{"done": done, "note": note}
	if err := c.do(ctx, http.MethodPatch, idPath("/todos", id), body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/todos", id), nil, nil)
}
