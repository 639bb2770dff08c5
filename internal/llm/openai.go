package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Client talks to an Ollama backend through its OpenAI-compatible endpoint
// (<base>/v1). Safe for concurrent use; model and temperature travel with
// each request, so one client serves any model the backend hosts.
type Client struct {
	api *openai.Client
}

// Option is a functional option for configuring the Client.
type Option func(*openai.ClientConfig)

// WithHTTPClient sets a custom HTTP client on the underlying API client.
func WithHTTPClient(hc openai.HTTPDoer) Option {
	return func(cfg *openai.ClientConfig) {
		cfg.HTTPClient = hc
	}
}

// NewClient creates a client for the backend at baseURL
// (e.g. http://localhost:11434).
func NewClient(baseURL string, opts ...Option) *Client {
	// Ollama ignores the API key but the OpenAI wire format requires one.
	cfg := openai.DefaultConfig("ollama")
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/") + "/v1"
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{api: openai.NewClientWithConfig(cfg)}
}

// Invoke sends the prompt plus declaration as a single chat completion with
// tool_choice forcing the declared call, and decodes the arguments of the
// invocation in the response.
func (c *Client) Invoke(ctx context.Context, req InvokeRequest) (map[string]any, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	// The request struct tags temperature with omitempty, so an exact 0 would
	// vanish from the body and the backend would fall back to its own default
	// instead of greedy sampling. Substitute the smallest positive float32,
	// which is indistinguishable from 0 for sampling purposes.
	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.ModelID,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        req.Declaration.Name,
					Description: req.Declaration.Description,
					Parameters:  req.Declaration.Parameters,
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: req.Declaration.Name},
		},
	})
	if err != nil {
		return nil, classifyTransportError(err, req.Timeout)
	}

	slog.Debug("backend round trip completed",
		slog.String("model", req.ModelID),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	if len(resp.Choices) == 0 {
		return nil, ErrNoToolInvocation
	}
	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) == 0 {
		return nil, ErrNoToolInvocation
	}
	if len(calls) > 1 {
		slog.Debug("backend returned multiple invocations, using the first",
			slog.Int("count", len(calls)))
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(calls[0].Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("decoding structured-call arguments: %w", err)
	}
	return args, nil
}

// classifyTransportError maps a round-trip failure onto the timeout/
// unavailable split. Deadline expiry can surface either as the context error
// or as a net.Error, depending on where the transport was interrupted.
func classifyTransportError(err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Timeout: timeout}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Timeout: timeout}
	}
	if strings.Contains(err.Error(), "context deadline exceeded") {
		return &TimeoutError{Timeout: timeout}
	}
	return &BackendError{Cause: err}
}
