// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/idea-generator/internal/docstore"
	"github.com/pdiddy/idea-generator/internal/validation"
	"github.com/pdiddy/idea-generator/pkg/types"
)

// ListComponents returns every stored component. An empty store is seeded
// with the sample parts and read again. If the store cannot be read the
// sample parts are returned with stable ids and the fallback source marker.
func (r *Repository) ListComponents(ctx context.Context) []types.Component {
	docs, err := r.store.List(ctx, docstore.Components)
	if err != nil {
		r.logger.Warn("listing components failed; serving sample parts", zap.Error(err))
		return fallbackComponents()
	}

	if len(docs) == 0 {
		r.logger.Info("no components stored; initializing sample parts")
		if _, err := r.InitializeSampleComponents(ctx); err != nil {
			r.logger.Warn("initializing sample components failed", zap.Error(err))
		}
		docs, err = r.store.List(ctx, docstore.Components)
		if err != nil {
			r.logger.Warn("listing components failed; serving sample parts", zap.Error(err))
			return fallbackComponents()
		}
	}

	return r.decodeComponents(docs)
}

// GetComponent returns one component or an error wrapping types.ErrNotFound.
func (r *Repository) GetComponent(ctx context.Context, id string) (types.Component, error) {
	doc, err := r.store.Get(ctx, docstore.Components, id)
	if err != nil {
		return types.Component{}, fmt.Errorf("getting component: %w", err)
	}
	var c types.Component
	if err := docstore.Decode(doc, &c); err != nil {
		return types.Component{}, err
	}
	return c, nil
}

// AddComponent validates c, stamps it and stores it under a new id.
func (r *Repository) AddComponent(ctx context.Context, c types.Component) (types.Component, error) {
	if err := validation.Struct(c); err != nil {
		return types.Component{}, err
	}

	now := r.now()
	c.ID = ""
	c.Source = ""
	c.CreatedAt = now
	c.UpdatedAt = now

	doc, err := docstore.Encode(c)
	if err != nil {
		return types.Component{}, err
	}
	id, err := r.store.Add(ctx, docstore.Components, doc)
	if err != nil {
		r.logger.Error("adding component failed", zap.String("name", c.Name), zap.Error(err))
		return types.Component{}, writeFailed("adding component", err)
	}

	c.ID = id
	r.logger.Debug("component added", zap.String("id", id), zap.String("name", c.Name))
	return c, nil
}

// UpdateComponent merges fields into the stored component and refreshes its
// updatedAt stamp. The merged component must still decode and validate;
// otherwise nothing is written and the error wraps types.ErrInvalidInput.
func (r *Repository) UpdateComponent(ctx context.Context, id string, fields map[string]any) error {
	var merged types.Component
	if err := r.checkUpdate(ctx, docstore.Components, id, fields, &merged); err != nil {
		if errors.Is(err, types.ErrInvalidInput) || errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("updating component %s: %w", id, err)
		}
		return writeFailed("updating component", err)
	}

	update := docstore.Document{}
	for k, v := range fields {
		update[k] = v
	}
	update["updatedAt"] = r.timestamp()

	if err := r.store.Update(ctx, docstore.Components, id, update); err != nil {
		r.logger.Error("updating component failed", zap.String("id", id), zap.Error(err))
		return writeFailed("updating component", err)
	}
	r.logger.Debug("component updated", zap.String("id", id))
	return nil
}

// DeleteComponent removes the component or reports types.ErrNotFound.
func (r *Repository) DeleteComponent(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.Components, id); err != nil {
		r.logger.Error("deleting component failed", zap.String("id", id), zap.Error(err))
		return writeFailed("deleting component", err)
	}
	r.logger.Debug("component deleted", zap.String("id", id))
	return nil
}

// ComponentsByCategory returns the stored components in category. No
// matches yields an empty slice. If the store cannot be queried the sample
// parts in that category are returned instead.
func (r *Repository) ComponentsByCategory(ctx context.Context, category string) []types.Component {
	docs, err := r.store.Query(ctx, docstore.Components, "category", category)
	if err != nil {
		r.logger.Warn("querying components by category failed; serving sample parts",
			zap.String("category", category), zap.Error(err))
		matched := []types.Component{}
		for _, c := range fallbackComponents() {
			if c.Category == category {
				matched = append(matched, c)
			}
		}
		return matched
	}
	return r.decodeComponents(docs)
}

// InitializeSampleComponents writes the sample parts when the components
// collection is empty and reports whether it did. Samples are stored under
// their stable ids comp_1..comp_N, so a repeated run replaces rather than
// duplicates them. Calls on one Repository are serialized. All writes are
// issued concurrently and joined; the first failure is returned and writes
// that already succeeded are kept.
func (r *Repository) InitializeSampleComponents(ctx context.Context) (bool, error) {
	r.seedMu.Lock()
	defer r.seedMu.Unlock()

	existing, err := r.store.List(ctx, docstore.Components)
	if err != nil {
		return false, fmt.Errorf("checking components: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	samples := SampleComponents()
	now := r.now()

	var g errgroup.Group
	for i, c := range samples {
		id := sampleID(i)
		c.CreatedAt = now
		c.UpdatedAt = now
		g.Go(func() error {
			doc, err := docstore.Encode(c)
			if err != nil {
				return err
			}
			if err := r.store.Set(ctx, docstore.Components, id, doc); err != nil {
				return fmt.Errorf("adding sample %q: %w", c.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, writeFailed("initializing sample components", err)
	}

	r.logger.Info("sample components initialized", zap.Int("count", len(samples)))
	return true, nil
}

func (r *Repository) decodeComponents(docs []docstore.Document) []types.Component {
	out := make([]types.Component, 0, len(docs))
	for _, doc := range docs {
		var c types.Component
		if err := docstore.Decode(doc, &c); err != nil {
			r.logger.Warn("skipping unreadable component", zap.String("id", doc.ID()), zap.Error(err))
			continue
		}
		out = append(out, c)
	}
	return out
}
