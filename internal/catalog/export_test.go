// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/idea-generator/pkg/types"
)

func TestExportIdeas(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)
	saved := saveIdeas(t, repo,
		types.Idea{Title: "Door Sensor", Tags: []string{"Security"}},
		types.Idea{Title: "Plant Monitor", Tags: []string{"Agriculture"}},
	)
	require.NoError(t, repo.SetFavorite(ctx, saved[0].ID, true))

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := repo.ExportIdeas(ctx, &buf, FormatYAML, false)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		var entries []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "Plant Monitor", entries[0]["title"])
		assert.Equal(t, "Door Sensor", entries[1]["title"])
	})

	t.Run("json favorites only", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := repo.ExportIdeas(ctx, &buf, FormatJSON, true)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		var ideas []types.Idea
		require.NoError(t, json.Unmarshal(buf.Bytes(), &ideas))
		require.Len(t, ideas, 1)
		assert.Equal(t, "Door Sensor", ideas[0].Title)
		assert.True(t, ideas[0].IsFavorite)
	})

	t.Run("unsupported format", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := repo.ExportIdeas(ctx, &buf, "csv", false)
		assert.ErrorIs(t, err, types.ErrInvalidInput)
		assert.Zero(t, buf.Len())
	})
}
