// Package ocr extracts text from uploaded images through a vision-capable
// chat-completion deployment. It fails closed when no deployment is
// configured.
package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned when no vision deployment is configured.
// Image uploads must be rejected with this error, never answered with an
// empty recognition result.
var ErrNotConfigured = errors.New("ocr is not configured: no vision deployment set")

// ServiceError is a transport or quota failure from the vision provider.
type ServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("ocr service error (status %d): %s", e.StatusCode, e.Message)
	}
	return "ocr service error: " + e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Retryable reports whether the failure is transient.
func (e *ServiceError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

const systemPrompt = "You are an OCR engine. Extract all readable text from the user-provided image. " +
	"Return only the plain text in logical reading order. Do not add commentary."

const userPrompt = "Extract the text as plain UTF-8. Preserve line breaks where appropriate."

// Options configures the OCR adapter.
type Options struct {
	Endpoint   string
	APIKey     string
	Deployment string // empty disables OCR
	APIVersion string
	Timeout    time.Duration
}

// Adapter recognizes text in image bytes.
type Adapter struct {
	client     *openai.Client
	deployment string
	timeout    time.Duration
}

// NewAdapter builds the OCR adapter. A missing deployment is not an error
// here: Recognize reports ErrNotConfigured per request so the rest of the
// service keeps working for text formats.
func NewAdapter(opts Options) *Adapter {
	a := &Adapter{
		deployment: opts.Deployment,
		timeout:    opts.Timeout,
	}
	if a.timeout <= 0 {
		a.timeout = 90 * time.Second
	}
	if opts.Deployment == "" || opts.Endpoint == "" || opts.APIKey == "" {
		a.deployment = ""
		return a
	}

	cfg := openai.DefaultAzureConfig(opts.APIKey, opts.Endpoint)
	if opts.APIVersion != "" {
		cfg.APIVersion = opts.APIVersion
	}
	cfg.AzureModelMapperFunc = func(model string) string { return model }
	cfg.HTTPClient = &http.Client{Timeout: a.timeout}
	a.client = openai.NewClientWithConfig(cfg)
	return a
}

// Configured reports whether a vision deployment is available.
func (a *Adapter) Configured() bool { return a.deployment != "" }

// Recognize extracts plain text in reading order from image bytes.
func (a *Adapter) Recognize(ctx context.Context, image []byte) (string, error) {
	if !a.Configured() {
		return "", ErrNotConfigured
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	dataURL := fmt.Sprintf("data:%s;base64,%s", sniffMIME(image), base64.StdEncoding.EncodeToString(image))

	req := openai.ChatCompletionRequest{
		Model: a.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: userPrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	}

	resp, err := a.client.CreateChatCompletion(callCtx, req)
	if err != nil {
		return "", wrapProviderError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &ServiceError{Message: "empty response from vision provider"}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func wrapProviderError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ServiceError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ServiceError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error(), Err: err}
	}
	return &ServiceError{Message: err.Error(), Err: err}
}

// sniffMIME detects the image type from magic bytes.
func sniffMIME(data []byte) string {
	switch {
	case len(data) >= 2 && data[0] == 0xff && data[1] == 0xd8:
		return "image/jpeg"
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return "image/png"
	case len(data) >= 4 && string(data[:4]) == "GIF8":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
