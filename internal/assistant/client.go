package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vijay-prabhu/perfume-finder/internal/recommend"
)

// ErrDisabled is returned when no assistant backend is configured
var ErrDisabled = errors.New("assistant backend is not configured")

// Client is an HTTP client for the external chat and recommendation backend
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ChatMessage is a single turn in a conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body for a chat turn
type ChatRequest struct {
	Message   string        `json:"message"`
	SessionID string        `json:"sessionId,omitempty"`
	History   []ChatMessage `json:"history,omitempty"`
}

// ChatResponse is the backend's reply to a chat turn
type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId,omitempty"`
}

// HealthResponse is the response from health check
type HealthResponse struct {
	Status string `json:"status"`
}

type recommendRequest struct {
	Survey recommend.Survey `json:"survey"`
	Limit  int              `json:"limit"`
}

type recommendResponse struct {
	Recommendations []recommend.Suggestion `json:"recommendations"`
}

// New creates a new assistant client. An empty baseURL yields a disabled client.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Enabled reports whether a backend URL is configured
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Health checks if the backend is reachable
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := c.do(req, &health); err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	return &health, nil
}

// Chat forwards a chat turn to the backend
func (c *Client) Chat(ctx context.Context, chat ChatRequest) (*ChatResponse, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	if strings.TrimSpace(chat.Message) == "" {
		return nil, errors.New("message is required")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/chat", chat)
	if err != nil {
		return nil, err
	}

	var result ChatResponse
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	return &result, nil
}

// Recommend asks the backend for AI recommendations.
// It satisfies recommend.Provider.
func (c *Client) Recommend(ctx context.Context, s recommend.Survey, limit int) ([]recommend.Suggestion, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/recommend", recommendRequest{Survey: s, Limit: limit})
	if err != nil {
		return nil, err
	}

	var result recommendResponse
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("recommendation request failed: %w", err)
	}
	return result.Recommendations, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
