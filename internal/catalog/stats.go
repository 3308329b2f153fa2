// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/idea-generator/internal/docstore"
	"github.com/pdiddy/idea-generator/pkg/types"
)

// fallbackComponentCount is reported by Stats when the store is unreadable.
const fallbackComponentCount = 8

// Stats counts stored ideas, components and favorites. Both collections are
// read concurrently; if either read fails a fixed record is returned.
func (r *Repository) Stats(ctx context.Context) types.Stats {
	var ideas, components []docstore.Document

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ideas, err = r.store.List(gctx, docstore.Ideas)
		return err
	})
	g.Go(func() error {
		var err error
		components, err = r.store.List(gctx, docstore.Components)
		return err
	})
	if err := g.Wait(); err != nil {
		r.logger.Warn("computing stats failed; using defaults", zap.Error(err))
		return types.Stats{ComponentsAvailable: fallbackComponentCount}
	}

	favorites := 0
	for _, doc := range ideas {
		if fav, _ := doc["isFavorite"].(bool); fav {
			favorites++
		}
	}

	return types.Stats{
		IdeasGenerated:      len(ideas),
		ComponentsAvailable: len(components),
		ProjectsCompleted:   0,
		FavoriteIdeas:       favorites,
	}
}
