package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// FallbackResponse is returned when the model produced no choices.
	FallbackResponse = "Sorry, I could not generate a response."

	appTitle    = "Kanban Assistant"
	temperature = 0.7
	maxTokens   = 1000
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Messages []Message
	// Referer is forwarded as HTTP-Referer for provider attribution.
	Referer string
}

// Completer produces one assistant reply for a conversation.
type Completer interface {
	Complete(ctx context.Context, request Request) (string, error)
}

// ProviderError is returned when the completion API responds with a
// non-200 status. Message is set only when the body was a provider error
// object; otherwise the raw body is kept in Body.
type ProviderError struct {
	StatusCode int
	Type       string
	Message    string
	Body       string
}

func (err *ProviderError) Error() string {
	switch {
	case err.Message == "":
		return fmt.Sprintf("openrouter: HTTP %d: %s", err.StatusCode, err.Body)
	case err.Type != "":
		return fmt.Sprintf("openrouter: HTTP %d: %s: %s", err.StatusCode, err.Type, err.Message)
	default:
		return fmt.Sprintf("openrouter: HTTP %d: %s", err.StatusCode, err.Message)
	}
}

func (err *ProviderError) IsUnauthorized() bool {
	return err.StatusCode == http.StatusUnauthorized
}

func (err *ProviderError) IsRateLimited() bool {
	return err.StatusCode == http.StatusTooManyRequests
}

// OpenRouter talks to an OpenAI-compatible /chat/completions endpoint.
type OpenRouter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewOpenRouter(baseURL, apiKey, model string, timeout time.Duration) *OpenRouter {
	return &OpenRouter{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Complete sends one non-streaming request. There is no retry.
func (c *OpenRouter) Complete(ctx context.Context, request Request) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    request.Messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openrouter: marshaling request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openrouter: creating request: %w", err)
	}
	httpRequest.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("HTTP-Referer", request.Referer)
	httpRequest.Header.Set("X-Title", appTitle)

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return "", fmt.Errorf("openrouter: sending request: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return "", readProviderError(httpResponse)
	}

	var wire chatResponse
	if err := json.NewDecoder(httpResponse.Body).Decode(&wire); err != nil {
		return "", fmt.Errorf("openrouter: decoding response: %w", err)
	}
	if len(wire.Choices) == 0 || wire.Choices[0].Message.Content == "" {
		return FallbackResponse, nil
	}
	return wire.Choices[0].Message.Content, nil
}

// readProviderError parses {"error":{"type":"...","message":"..."}} bodies.
func readProviderError(httpResponse *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(httpResponse.Body, 4096))

	var wireError struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Error.Message != "" {
		return &ProviderError{
			StatusCode: httpResponse.StatusCode,
			Type:       wireError.Error.Type,
			Message:    wireError.Error.Message,
		}
	}

	return &ProviderError{
		StatusCode: httpResponse.StatusCode,
		Body:       string(body),
	}
}
