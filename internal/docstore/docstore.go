// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docstore provides a collection/document API over interchangeable
// storage backends: SQLite (local file), DynamoDB (hosted), and memory.
//
// Documents are JSON-shaped maps. Every document returned by a Store carries
// its identifier under the "id" key; the key is stripped before writing.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// Collection names used by the catalog.
const (
	Components  = "components"
	Ideas       = "ideas"
	Preferences = "preferences"
)

// idField is the document key that carries the document identifier.
const idField = "id"

// Document is a JSON-shaped record. Numbers decode as float64.
type Document map[string]any

// ID returns the document identifier, or "" when absent.
func (d Document) ID() string {
	id, _ := d[idField].(string)
	return id
}

// Store is a minimal document database. Implementations are safe for
// concurrent use.
type Store interface {
	// Get returns the document or an error wrapping types.ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)

	// List returns every document in the collection. An empty collection
	// yields an empty slice, not an error.
	List(ctx context.Context, collection string) ([]Document, error)

	// Query returns documents whose top-level field equals value.
	Query(ctx context.Context, collection, field string, value any) ([]Document, error)

	// Add stores doc under a newly generated identifier and returns it.
	Add(ctx context.Context, collection string, doc Document) (string, error)

	// Set creates or replaces the document with the given identifier.
	Set(ctx context.Context, collection, id string, doc Document) error

	// Update replaces the given top-level fields of an existing document.
	// It returns an error wrapping types.ErrNotFound if the document is absent.
	Update(ctx context.Context, collection, id string, fields Document) error

	// Delete removes the document or returns an error wrapping types.ErrNotFound.
	Delete(ctx context.Context, collection, id string) error

	Close() error
}

// Open constructs the Store selected by cfg.Backend.
func Open(ctx context.Context, cfg types.StoreConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case types.StoreSQLite, "":
		path := cfg.Path
		if path == "" {
			path = "data/ideas.db"
		}
		return NewSQLiteStore(path, logger)
	case types.StoreDynamoDB:
		return OpenDynamoStore(ctx, cfg.DynamoDB, logger)
	case types.StoreMemory:
		logger.Warn("using in-memory document store; data is lost on exit")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q: use sqlite, dynamodb, or memory", cfg.Backend)
	}
}

// Encode converts a typed value into a Document through its JSON form.
func Encode(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return doc, nil
}

// Decode converts a Document into the typed value pointed to by v.
func Decode(doc Document, v any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding document %s: %w", doc.ID(), err)
	}
	return nil
}

// body returns a copy of doc without the identifier key.
func body(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if k == idField {
			continue
		}
		out[k] = v
	}
	return out
}

// withID returns doc with the identifier key set.
func withID(doc Document, id string) Document {
	if doc == nil {
		doc = Document{}
	}
	doc[idField] = id
	return doc
}

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// checkField rejects field names that cannot be used in a query path.
func checkField(field string) error {
	if !fieldPattern.MatchString(field) {
		return fmt.Errorf("%w: query field %q", types.ErrInvalidInput, field)
	}
	return nil
}

func notFound(collection, id string) error {
	return fmt.Errorf("%s/%s: %w", collection, id, types.ErrNotFound)
}
