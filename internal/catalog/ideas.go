// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/internal/docstore"
	"github.com/pdiddy/idea-generator/internal/validation"
	"github.com/pdiddy/idea-generator/pkg/types"
)

// ListIdeas returns saved ideas, newest first. A read failure yields an
// empty list.
func (r *Repository) ListIdeas(ctx context.Context) []types.Idea {
	docs, err := r.store.List(ctx, docstore.Ideas)
	if err != nil {
		r.logger.Warn("listing ideas failed", zap.Error(err))
		return []types.Idea{}
	}
	ideas := r.decodeIdeas(docs)
	sort.SliceStable(ideas, func(i, j int) bool {
		return ideas[i].CreatedAt.After(ideas[j].CreatedAt)
	})
	return ideas
}

// GetIdea returns one idea or an error wrapping types.ErrNotFound.
func (r *Repository) GetIdea(ctx context.Context, id string) (types.Idea, error) {
	doc, err := r.store.Get(ctx, docstore.Ideas, id)
	if err != nil {
		return types.Idea{}, fmt.Errorf("getting idea: %w", err)
	}
	var idea types.Idea
	if err := docstore.Decode(doc, &idea); err != nil {
		return types.Idea{}, err
	}
	return idea, nil
}

// SaveIdea stores idea under a new id with fresh timestamps. Any id the
// generator assigned is replaced by the store's.
func (r *Repository) SaveIdea(ctx context.Context, idea types.Idea) (types.Idea, error) {
	if err := validation.Struct(idea); err != nil {
		return types.Idea{}, err
	}

	now := r.now()
	idea.ID = ""
	idea.CreatedAt = now
	idea.UpdatedAt = now
	if idea.GeneratedBy == "" {
		idea.GeneratedBy = types.GeneratedByManual
	}

	doc, err := docstore.Encode(idea)
	if err != nil {
		return types.Idea{}, err
	}
	id, err := r.store.Add(ctx, docstore.Ideas, doc)
	if err != nil {
		r.logger.Error("saving idea failed", zap.String("title", idea.Title), zap.Error(err))
		return types.Idea{}, writeFailed("saving idea", err)
	}

	idea.ID = id
	r.logger.Debug("idea saved", zap.String("id", id), zap.String("title", idea.Title))
	return idea, nil
}

// UpdateIdea merges fields into the stored idea and refreshes updatedAt.
// The merged idea must still decode and validate before anything is written.
func (r *Repository) UpdateIdea(ctx context.Context, id string, fields map[string]any) error {
	var merged types.Idea
	if err := r.checkUpdate(ctx, docstore.Ideas, id, fields, &merged); err != nil {
		if errors.Is(err, types.ErrInvalidInput) || errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("updating idea %s: %w", id, err)
		}
		return writeFailed("updating idea", err)
	}
	update := docstore.Document{}
	for k, v := range fields {
		update[k] = v
	}
	update["updatedAt"] = r.timestamp()

	if err := r.store.Update(ctx, docstore.Ideas, id, update); err != nil {
		r.logger.Error("updating idea failed", zap.String("id", id), zap.Error(err))
		return writeFailed("updating idea", err)
	}
	r.logger.Debug("idea updated", zap.String("id", id))
	return nil
}

// SaveEnhancement attaches e to the stored idea.
func (r *Repository) SaveEnhancement(ctx context.Context, id string, e types.Enhancement) error {
	doc, err := docstore.Encode(e)
	if err != nil {
		return err
	}
	return r.UpdateIdea(ctx, id, map[string]any{"enhancement": map[string]any(doc)})
}

// DeleteIdea removes the idea or reports types.ErrNotFound.
func (r *Repository) DeleteIdea(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.Ideas, id); err != nil {
		r.logger.Error("deleting idea failed", zap.String("id", id), zap.Error(err))
		return writeFailed("deleting idea", err)
	}
	r.logger.Debug("idea deleted", zap.String("id", id))
	return nil
}

// SetFavorite records the favorite flag.
func (r *Repository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	return r.UpdateIdea(ctx, id, map[string]any{"isFavorite": favorite})
}

// ToggleFavorite flips the stored favorite flag and returns the new value.
// The read and write are separate calls; concurrent toggles may interleave.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	idea, err := r.GetIdea(ctx, id)
	if err != nil {
		return false, err
	}
	favorite := !idea.IsFavorite
	if err := r.SetFavorite(ctx, id, favorite); err != nil {
		return false, err
	}
	return favorite, nil
}

// SearchIdeas returns ideas whose title, description or tags contain term,
// ignoring case. A read failure yields an empty list.
func (r *Repository) SearchIdeas(ctx context.Context, term string) []types.Idea {
	docs, err := r.store.List(ctx, docstore.Ideas)
	if err != nil {
		r.logger.Warn("searching ideas failed", zap.String("term", term), zap.Error(err))
		return []types.Idea{}
	}

	needle := strings.ToLower(term)
	matched := []types.Idea{}
	for _, idea := range r.decodeIdeas(docs) {
		haystack := strings.ToLower(idea.Title + " " + idea.Description + " " + strings.Join(idea.Tags, " "))
		if strings.Contains(haystack, needle) {
			matched = append(matched, idea)
		}
	}
	return matched
}

func (r *Repository) decodeIdeas(docs []docstore.Document) []types.Idea {
	out := make([]types.Idea, 0, len(docs))
	for _, doc := range docs {
		var idea types.Idea
		if err := docstore.Decode(doc, &idea); err != nil {
			r.logger.Warn("skipping unreadable idea", zap.String("id", doc.ID()), zap.Error(err))
			continue
		}
		out = append(out, idea)
	}
	return out
}
