// Package translate adapts a hosted chat-completion deployment into the
// French→English translation step of the pipeline.
package translate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

// Error is a failed translation call. It carries the provider status and
// message plus the configured deployment name so operators can tell which
// deployment misbehaved.
type Error struct {
	Deployment string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("translation failed (deployment %q, status %d): %s", e.Deployment, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("translation failed (deployment %q): %s", e.Deployment, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the failure is transient (quota or server side).
func (e *Error) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Options configures the translation client.
type Options struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Timeout    time.Duration
}

// Client translates text chunks through a single configured deployment.
// There is no fallback model: a missing deployment fails construction.
type Client struct {
	client     *openai.Client
	deployment string
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker
}

// NewClient builds a translation client. It fails fast before any call is
// made if the deployment name is missing.
func NewClient(opts Options) (*Client, error) {
	if opts.Endpoint == "" || opts.APIKey == "" {
		return nil, fmt.Errorf("translation endpoint and api key are required")
	}
	if opts.Deployment == "" {
		return nil, fmt.Errorf("translation deployment name is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}

	cfg := openai.DefaultAzureConfig(opts.APIKey, opts.Endpoint)
	if opts.APIVersion != "" {
		cfg.APIVersion = opts.APIVersion
	}
	// The Model field carries the deployment name verbatim.
	cfg.AzureModelMapperFunc = func(model string) string { return model }
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "translate",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		client:     openai.NewClientWithConfig(cfg),
		deployment: opts.Deployment,
		timeout:    opts.Timeout,
		breaker:    breaker,
	}, nil
}

// Deployment returns the configured deployment name.
func (c *Client) Deployment() string { return c.deployment }

// Translate sends one chunk of French text and returns the English Markdown.
func (c *Client) Translate(ctx context.Context, text string, mode Mode) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: mode.systemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: nonZeroTemperature(mode.temperature()),
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.client.CreateChatCompletion(callCtx, req)
		if err != nil {
			return nil, c.wrapProviderError(err)
		}
		if len(resp.Choices) == 0 {
			return nil, &Error{Deployment: c.deployment, Message: "empty response from provider"}
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &Error{Deployment: c.deployment, Message: "provider circuit open: " + err.Error(), Err: err}
		}
		return "", err
	}
	return out.(string), nil
}

func (c *Client) wrapProviderError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{
			Deployment: c.deployment,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{
			Deployment: c.deployment,
			StatusCode: reqErr.HTTPStatusCode,
			Message:    reqErr.Error(),
			Err:        err,
		}
	}
	return &Error{Deployment: c.deployment, Message: err.Error(), Err: err}
}

// nonZeroTemperature keeps an explicit 0.0 from being dropped by the client's
// omitempty marshalling.
func nonZeroTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
