// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Envelope is the body of every API response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes reported in ErrorBody.Code.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeQuotaExceeded     = "QUOTA_EXCEEDED"
	CodeInvalidCredential = "INVALID_CREDENTIAL"
	CodeRateLimited       = "RATE_LIMITED"
	CodeProviderFailure   = "PROVIDER_FAILURE"
	CodeCredentialMissing = "CREDENTIAL_MISSING"
	CodeInternal          = "INTERNAL_ERROR"
)

// statusFor maps an error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, types.ErrQuotaExceeded):
		return http.StatusPaymentRequired, CodeQuotaExceeded
	case errors.Is(err, types.ErrInvalidCredential):
		return http.StatusUnauthorized, CodeInvalidCredential
	case errors.Is(err, types.ErrRateLimited):
		return http.StatusTooManyRequests, CodeRateLimited
	case errors.Is(err, types.ErrProviderFailure):
		return http.StatusBadGateway, CodeProviderFailure
	case errors.Is(err, types.ErrCredentialMissing):
		return http.StatusServiceUnavailable, CodeCredentialMissing
	case errors.Is(err, types.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (s *Server) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{Success: true, Data: data}); err != nil {
		s.logger.Warn("encoding response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		message = http.StatusText(status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := Envelope{Error: &ErrorBody{Code: code, Message: message}}
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		s.logger.Warn("encoding error response failed", zap.Error(encErr))
	}
}

// decodeBody reads a JSON request body into v. Failures wrap
// types.ErrInvalidInput.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", types.ErrInvalidInput)
		}
		return fmt.Errorf("%w: decoding request body: %v", types.ErrInvalidInput, err)
	}
	return nil
}
