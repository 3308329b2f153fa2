// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"net/http"
	"strings"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// Backend sends one chat completion and returns the text of the first
// choice. Implementations do not retry.
type Backend interface {
	Complete(ctx context.Context, c Completion) (string, error)

	// Name is recorded as the provenance of ideas the backend produced.
	Name() string
}

// Completion is a single system + user exchange. Zero MaxTokens,
// Temperature or TopP leave the backend's configured value in place.
type Completion struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Unconfigured is the Backend used when no API credential is available.
// The Generator recognises it and never calls Complete on it.
type Unconfigured struct{}

// Complete always fails with types.ErrCredentialMissing.
func (Unconfigured) Complete(context.Context, Completion) (string, error) {
	return "", types.ErrCredentialMissing
}

// Name returns the sample-idea provenance marker.
func (Unconfigured) Name() string { return types.GeneratedBySamples }

// NewBackend returns an *OpenAIBackend when cfg carries an API key and
// Unconfigured otherwise.
func NewBackend(cfg types.AIConfig, client *http.Client) Backend {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return Unconfigured{}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = ideasMaxTokens
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = ideasTemperature
	}

	return &OpenAIBackend{
		APIKey:      key,
		Model:       model,
		BaseURL:     cfg.BaseURL,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Client:      client,
	}
}
