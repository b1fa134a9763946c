package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/julianstephens/planme/internal/constants"
	"github.com/julianstephens/planme/internal/llm"
)

// maxErrorBody caps how much of an error response is kept for the message
const maxErrorBody = 16 * 1024

// Client talks to an OpenAI-compatible chat completions endpoint
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

// APIError is a non-2xx answer from the endpoint
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("openrouter: status %d", e.Status)
	}
	return fmt.Sprintf("openrouter: status %d: %s", e.Status, e.Message)
}

// ErrNoChoices is returned when the endpoint answers without any completion
var ErrNoChoices = errors.New("openrouter: response contained no choices")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type jsonSchemaFormat struct {
	Name   string      `json:"name"`
	Strict bool        `json:"strict"`
	Schema *llm.Schema `json:"schema"`
}

type responseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *jsonSchemaFormat `json:"json_schema,omitempty"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}
	if model == "" {
		model = constants.DefaultModel
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		HTTP:    &http.Client{},
	}
}

func (c *Client) Name() string {
	return constants.ProviderOpenRouter
}

// Complete sends the prompt as a single user message and returns the content
// of the first choice.
func (c *Client) Complete(ctx context.Context, comp llm.Completion) (string, error) {
	body := chatRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "user", Content: comp.Prompt}},
		Temperature: comp.Temperature,
		MaxTokens:   comp.MaxTokens,
	}
	if comp.Schema != nil {
		body.ResponseFormat = &responseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchemaFormat{
				Name:   comp.SchemaName,
				Strict: comp.Strict,
				Schema: comp.Schema,
			},
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	// OpenRouter reports some upstream failures in a 200 body
	if out.Error != nil {
		return "", &APIError{Status: resp.StatusCode, Message: out.Error.Message}
	}
	if len(out.Choices) == 0 {
		return "", ErrNoChoices
	}

	return out.Choices[0].Message.Content, nil
}
