// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultModel is used when configuration names none.
const DefaultModel = "gpt-3.5-turbo"

// openAIBaseURL is the chat-completions API root. Package-level var for test
// substitution.
var openAIBaseURL = "https://api.openai.com/v1"

// maxErrorBody bounds how much of a failed response is kept for messages.
const maxErrorBody = 8 << 10

// OpenAIBackend calls an OpenAI-compatible chat-completions endpoint.
type OpenAIBackend struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	Client      *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type errorEnvelope struct {
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}

// ProviderError is a non-2xx reply from the generation API.
type ProviderError struct {
	StatusCode int
	Message    string
	Type       string
	Code       string
}

func (e *ProviderError) Error() string {
	switch {
	case e.Message != "" && e.Code != "":
		return fmt.Sprintf("status %d (%s): %s", e.StatusCode, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("status %d", e.StatusCode)
	}
}

// Name returns the provenance marker, e.g. "OpenAI gpt-3.5-turbo".
func (b *OpenAIBackend) Name() string {
	return "OpenAI " + b.Model
}

// Complete sends c as a system and user message pair.
func (b *OpenAIBackend) Complete(ctx context.Context, c Completion) (string, error) {
	reqBody := chatRequest{
		Model: b.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.System},
			{Role: "user", Content: c.Prompt},
		},
		MaxTokens:   b.MaxTokens,
		Temperature: b.Temperature,
		TopP:        c.TopP,
	}
	if c.MaxTokens > 0 {
		reqBody.MaxTokens = c.MaxTokens
	}
	if c.Temperature > 0 {
		reqBody.Temperature = c.Temperature
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	base := b.BaseURL
	if base == "" {
		base = openAIBaseURL
	}
	url := strings.TrimRight(base, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling generation API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", parseProviderError(resp.StatusCode, body)
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding generation response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("generation API returned no choices")
	}
	return strings.TrimSpace(cResp.Choices[0].Message.Content), nil
}

func parseProviderError(status int, body []byte) *ProviderError {
	pe := &ProviderError{StatusCode: status}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		pe.Message = env.Error.Message
		pe.Type = env.Error.Type
		if env.Error.Code != nil {
			pe.Code = fmt.Sprint(env.Error.Code)
		}
		return pe
	}

	pe.Message = strings.TrimSpace(string(body))
	return pe
}
