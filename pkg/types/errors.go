// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Persistence errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrWriteFailed  = errors.New("write failed")
	ErrInvalidInput = errors.New("invalid input")
)

// Generation errors. ErrMalformedReply never reaches callers of
// Generator.Generate; it degrades to a synthesized idea.
var (
	ErrCredentialMissing = errors.New("generation API credential not configured")
	ErrQuotaExceeded     = errors.New("generation API quota exceeded")
	ErrInvalidCredential = errors.New("generation API credential rejected")
	ErrRateLimited       = errors.New("generation API rate limited")
	ErrProviderFailure   = errors.New("generation API failure")
	ErrMalformedReply    = errors.New("malformed generation reply")
)
