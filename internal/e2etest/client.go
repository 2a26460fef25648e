package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Client is a small HTTP client for the planner API.
type Client struct {
	client *http.Client
	url    string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// DecodeJSON unmarshals the response body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %q: %w", r.Body, err)
	}
	return nil
}

func NewClient(url string) *Client {
	return &Client{
		client: &http.Client{Timeout: time.Minute}, //nolint:exhaustruct // defaults are fine.
		url:    url,
	}
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	for {
		resp, err := c.Do(ctx, http.MethodGet, urlPath, nil)
		if err == nil && resp.StatusCode == http.StatusOK {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Do sends a request and reads the whole response. A non-nil body is sent as JSON.
func (c *Client) Do(ctx context.Context, method, urlPath string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: b}, nil
}

// PostJSON posts body as JSON.
func (c *Client) PostJSON(ctx context.Context, urlPath string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, urlPath, body)
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Do(ctx, http.MethodGet, urlPath, nil)
	if err != nil {
		return nil, err
	}
	if http.StatusOK != resp.StatusCode {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("create document from reader: %w", err)
	}
	return doc, nil
}

// GeneratePlan creates a profile, generates its weekly plan and checks that the plan page renders. It returns the
// new user id.
func (c *Client) GeneratePlan(ctx context.Context, profile map[string]any) (string, error) {
	resp, err := c.PostJSON(ctx, "/api/users", profile)
	if err != nil {
		return "", fmt.Errorf("create profile: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create profile: status %d: %s", resp.StatusCode, resp.Body)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err = resp.DecodeJSON(&created); err != nil {
		return "", err
	}

	if resp, err = c.PostJSON(ctx, "/api/users/generate-workout", map[string]string{"userId": created.ID}); err != nil {
		return created.ID, fmt.Errorf("generate plan: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return created.ID, fmt.Errorf("generate plan: status %d: %s", resp.StatusCode, resp.Body)
	}

	doc, err := c.GetDoc(ctx, "/users/"+created.ID+"/plan")
	if err != nil {
		return created.ID, fmt.Errorf("get plan page: %w", err)
	}
	if doc.Find("h2").Length() == 0 {
		return created.ID, errors.New("plan page has no days")
	}
	return created.ID, nil
}
