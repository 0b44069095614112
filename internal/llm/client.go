// Package llm talks to an OpenAI-compatible model endpoint and normalizes
// its replies into validated decisions.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const judgeTemperature = 0.1

// Client performs the two-call exchange against the model endpoint:
// model identity discovery, then a chat completion.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client for the configured endpoint. The shared
// deadline is enforced per call via context, not on the http.Client.
func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Judge sends the system instruction and user payload to the model and
// returns its raw textual reply. One deadline covers both the discovery
// call and the completion call; it is armed once, before the first call.
//
// The returned string is unvalidated. Normalize is the only consumer that
// may trust it.
func (c *Client) Judge(ctx context.Context, instruction, payload string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	model := c.discoverModel(ctx)

	body := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: instruction},
			{Role: "user", Content: payload},
		},
		Temperature: judgeTemperature,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", c.classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.classifyTransport(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Non-2xx is treated like an unreachable endpoint, 4xx included.
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, truncate(string(respBody), 200))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: decoding completion response: %v", ErrUnavailable, err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		// Intentionally unvalidated passthrough; Normalize will reject it
		// with a proper validation error.
		return "{}", nil
	}

	return result.Choices[0].Message.Content, nil
}

// discoverModel asks the endpoint which model is loaded. Any failure or
// an empty listing falls back to the configured identifier. The caller's
// deadline is reused, never reset.
func (c *Client) discoverModel(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/v1/models", nil)
	if err != nil {
		return c.cfg.Model
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.cfg.Model
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.cfg.Model
	}

	var models modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return c.cfg.Model
	}
	if len(models.Data) == 0 || models.Data[0].ID == "" {
		return c.cfg.Model
	}

	return models.Data[0].ID
}

func (c *Client) classifyTransport(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
