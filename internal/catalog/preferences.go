// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/internal/docstore"
	"github.com/pdiddy/idea-generator/pkg/types"
)

// GetPreferences returns the stored preferences for userID. A user without a
// record gets the defaults, which are saved on the way out. Read failures
// also return the defaults.
func (r *Repository) GetPreferences(ctx context.Context, userID string) types.Preferences {
	if userID == "" {
		userID = types.DefaultUserID
	}

	doc, err := r.store.Get(ctx, docstore.Preferences, userID)
	if errors.Is(err, types.ErrNotFound) {
		defaults := types.DefaultPreferences(userID)
		saved, err := r.SavePreferences(ctx, userID, defaults)
		if err != nil {
			r.logger.Warn("saving default preferences failed", zap.String("user", userID), zap.Error(err))
			return defaults
		}
		return saved
	}
	if err != nil {
		r.logger.Warn("reading preferences failed; using defaults", zap.String("user", userID), zap.Error(err))
		return types.DefaultPreferences(userID)
	}

	var p types.Preferences
	if err := docstore.Decode(doc, &p); err != nil {
		r.logger.Warn("unreadable preferences; using defaults", zap.String("user", userID), zap.Error(err))
		return types.DefaultPreferences(userID)
	}
	p.UserID = userID
	return p
}

// SavePreferences updates the user's record, creating it if the update
// fails for any reason. The update error is logged and otherwise dropped.
func (r *Repository) SavePreferences(ctx context.Context, userID string, p types.Preferences) (types.Preferences, error) {
	if userID == "" {
		userID = types.DefaultUserID
	}
	p.UserID = userID
	p.UpdatedAt = r.now()
	if p.SelectedThemes == nil {
		p.SelectedThemes = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}

	doc, err := docstore.Encode(p)
	if err != nil {
		return types.Preferences{}, err
	}

	if err := r.store.Update(ctx, docstore.Preferences, userID, doc); err != nil {
		r.logger.Warn("updating preferences failed; creating record",
			zap.String("user", userID), zap.Error(err))
		if err := r.store.Set(ctx, docstore.Preferences, userID, doc); err != nil {
			r.logger.Error("creating preferences failed", zap.String("user", userID), zap.Error(err))
			return types.Preferences{}, writeFailed("saving preferences", err)
		}
	}

	r.logger.Debug("preferences saved", zap.String("user", userID))
	return p, nil
}
