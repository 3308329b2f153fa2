// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// User-facing messages for classified provider failures.
const (
	msgQuotaExceeded     = "OpenAI API quota exceeded. Please check your billing details or add credits to your OpenAI account."
	msgInvalidCredential = "Invalid OpenAI API key. Please check your API key configuration."
	msgRateLimited       = "OpenAI API rate limit exceeded. Please try again in a moment."
	msgServicePrefix     = "AI service error: "
)

// ServiceError is a classified generation failure. Its message is suitable
// for end users; errors.Is matches both the kind sentinel and the cause.
type ServiceError struct {
	Kind    error
	Message string
	Err     error
}

func (e *ServiceError) Error() string { return e.Message }

func (e *ServiceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// classify maps a backend failure onto one of the four provider kinds.
// Quota is checked before rate limiting because the API reports exhausted
// credit with HTTP 429 as well.
func classify(err error) error {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		signal := strings.ToLower(pe.Code + " " + pe.Type)
		switch {
		case strings.Contains(signal, "insufficient_quota"):
			return &ServiceError{Kind: types.ErrQuotaExceeded, Message: msgQuotaExceeded, Err: err}
		case strings.Contains(signal, "invalid_api_key"):
			return &ServiceError{Kind: types.ErrInvalidCredential, Message: msgInvalidCredential, Err: err}
		case strings.Contains(signal, "rate_limit"),
			strings.Contains(strings.ToLower(pe.Message), "rate_limit"),
			pe.StatusCode == http.StatusTooManyRequests:
			return &ServiceError{Kind: types.ErrRateLimited, Message: msgRateLimited, Err: err}
		}
		detail := pe.Message
		if detail == "" {
			detail = pe.Error()
		}
		return &ServiceError{Kind: types.ErrProviderFailure, Message: msgServicePrefix + detail, Err: err}
	}

	return &ServiceError{Kind: types.ErrProviderFailure, Message: msgServicePrefix + err.Error(), Err: err}
}
