// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory. Documents are copied on the
// way in and out so callers never share maps with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

type memCollection struct {
	docs  map[string][]byte
	order []string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

func (m *MemoryStore) collection(name string) *memCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memCollection{docs: make(map[string][]byte)}
		m.collections[name] = c
	}
	return c
}

func (m *MemoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[collection]
	if !ok {
		return nil, notFound(collection, id)
	}
	raw, ok := c.docs[id]
	if !ok {
		return nil, notFound(collection, id)
	}
	return load(raw, id)
}

func (m *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	return m.filter(collection, func(Document) bool { return true })
}

func (m *MemoryStore) Query(_ context.Context, collection, field string, value any) ([]Document, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	want, err := normalize(value)
	if err != nil {
		return nil, err
	}
	return m.filter(collection, func(doc Document) bool {
		got, ok := doc[field]
		return ok && reflect.DeepEqual(got, want)
	})
}

func (m *MemoryStore) filter(collection string, keep func(Document) bool) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := []Document{}
	c, ok := m.collections[collection]
	if !ok {
		return docs, nil
	}
	for _, id := range c.order {
		doc, err := load(c.docs[id], id)
		if err != nil {
			return nil, err
		}
		if keep(doc) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *MemoryStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	id := uuid.NewString()
	if err := m.Set(ctx, collection, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (m *MemoryStore) Set(_ context.Context, collection, id string, doc Document) error {
	raw, err := json.Marshal(body(doc))
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(collection)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = raw
	return nil
}

func (m *MemoryStore) Update(_ context.Context, collection, id string, fields Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[collection]
	if !ok {
		return notFound(collection, id)
	}
	raw, ok := c.docs[id]
	if !ok {
		return notFound(collection, id)
	}

	var current Document
	if err := json.Unmarshal(raw, &current); err != nil {
		return err
	}
	for k, v := range body(fields) {
		current[k] = v
	}
	merged, err := json.Marshal(current)
	if err != nil {
		return err
	}
	c.docs[id] = merged
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[collection]
	if !ok {
		return notFound(collection, id)
	}
	if _, ok := c.docs[id]; !ok {
		return notFound(collection, id)
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func load(raw []byte, id string) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return withID(doc, id), nil
}

// normalize gives value the shape it would have after a JSON round trip so
// that query comparisons match stored documents.
func normalize(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
