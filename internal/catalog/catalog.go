// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog maps component, idea, preference and stats operations onto
// a docstore.Store.
//
// Reads degrade rather than fail: component listings fall back to the
// built-in sample parts, idea listings to an empty list, preferences to
// defaults and stats to a fixed record. Writes and lookups by identifier
// surface errors wrapping the sentinels in pkg/types.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/internal/docstore"
	"github.com/pdiddy/idea-generator/internal/validation"
	"github.com/pdiddy/idea-generator/pkg/types"
)

// Repository is the persistence adapter used by the CLI and HTTP server.
type Repository struct {
	store  docstore.Store
	logger *zap.Logger
	now    func() time.Time

	// seedMu serializes sample initialization within this process.
	seedMu sync.Mutex
}

// New returns a Repository backed by store.
func New(store docstore.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *Repository) timestamp() string {
	return r.now().Format(time.RFC3339Nano)
}

// writeFailed wraps err with types.ErrWriteFailed unless it already reports
// a missing document.
func writeFailed(op string, err error) error {
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, types.ErrWriteFailed, err)
}

// readOnlyFields are assigned by the repository and rejected in updates.
var readOnlyFields = []string{"id", "createdAt"}

// checkUpdate merges fields over the stored document and decodes the result
// into v, which must point to a zero record. The merged record must pass
// validation before anything is written. Failures wrap types.ErrInvalidInput,
// except a missing document, which wraps types.ErrNotFound.
func (r *Repository) checkUpdate(ctx context.Context, collection, id string, fields map[string]any, v any) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields", types.ErrInvalidInput)
	}
	for _, k := range readOnlyFields {
		if _, ok := fields[k]; ok {
			return fmt.Errorf("%w: %s cannot be changed", types.ErrInvalidInput, k)
		}
	}

	current, err := r.store.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	merged := make(docstore.Document, len(current)+len(fields))
	for k, val := range current {
		merged[k] = val
	}
	for k, val := range fields {
		merged[k] = val
	}

	if err := docstore.Decode(merged, v); err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidInput, err)
	}
	return validation.Struct(v)
}
