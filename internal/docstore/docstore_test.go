// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// backends returns one constructor per Store implementation exercised by the
// shared cases.
func backends(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "test.db"), zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
		"dynamodb": func(t *testing.T) Store {
			return NewDynamoStore(newFakeDynamo(), "ideas-test", zap.NewNop())
		},
	}
}

func TestStore_AddGet(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			id, err := s.Add(ctx, Components, Document{
				"name":     "Arduino Uno",
				"category": "Microcontrollers",
				"price":    450.0,
				"specifications": map[string]any{
					"digital_pins": 14,
				},
			})
			require.NoError(t, err)
			require.NotEmpty(t, id)

			doc, err := s.Get(ctx, Components, id)
			require.NoError(t, err)
			assert.Equal(t, id, doc.ID())
			assert.Equal(t, "Arduino Uno", doc["name"])
			assert.Equal(t, 450.0, doc["price"])
			specs, ok := doc["specifications"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, 14.0, specs["digital_pins"])
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := open(t).Get(context.Background(), Ideas, "nope")
			assert.ErrorIs(t, err, types.ErrNotFound)
		})
	}
}

func TestStore_ListEmptyCollection(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			docs, err := open(t).List(context.Background(), Ideas)
			require.NoError(t, err)
			assert.NotNil(t, docs)
			assert.Empty(t, docs)
		})
	}
}

func TestStore_Query(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			for _, doc := range []Document{
				{"name": "HC-SR04", "category": "Sensors"},
				{"name": "SG90", "category": "Motors"},
				{"name": "PIR", "category": "Sensors"},
			} {
				_, err := s.Add(ctx, Components, doc)
				require.NoError(t, err)
			}

			sensors, err := s.Query(ctx, Components, "category", "Sensors")
			require.NoError(t, err)
			assert.Len(t, sensors, 2)

			none, err := s.Query(ctx, Components, "category", "Displays")
			require.NoError(t, err)
			assert.NotNil(t, none)
			assert.Empty(t, none)
		})
	}
}

func TestStore_QueryRejectsBadField(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := open(t).Query(context.Background(), Components, `x") OR 1=1 --`, "y")
			assert.ErrorIs(t, err, types.ErrInvalidInput)
		})
	}
}

func TestStore_UpdateMergesTopLevelFields(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			id, err := s.Add(ctx, Ideas, Document{"title": "Plant Waterer", "isFavorite": false})
			require.NoError(t, err)

			require.NoError(t, s.Update(ctx, Ideas, id, Document{"isFavorite": true, "id": "ignored"}))

			doc, err := s.Get(ctx, Ideas, id)
			require.NoError(t, err)
			assert.Equal(t, true, doc["isFavorite"])
			assert.Equal(t, "Plant Waterer", doc["title"])
			assert.Equal(t, id, doc.ID())
		})
	}
}

func TestStore_UpdateMissing(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := open(t).Update(context.Background(), Preferences, "default_user", Document{"skillLevel": "Advanced"})
			assert.ErrorIs(t, err, types.ErrNotFound)
		})
	}
}

func TestStore_SetCreatesThenReplaces(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			require.NoError(t, s.Set(ctx, Preferences, "u1", Document{"skillLevel": "Beginner", "teamSize": "Individual"}))
			require.NoError(t, s.Set(ctx, Preferences, "u1", Document{"skillLevel": "Advanced"}))

			doc, err := s.Get(ctx, Preferences, "u1")
			require.NoError(t, err)
			assert.Equal(t, "Advanced", doc["skillLevel"])
			_, hasTeam := doc["teamSize"]
			assert.False(t, hasTeam, "Set replaces the whole document")

			docs, err := s.List(ctx, Preferences)
			require.NoError(t, err)
			assert.Len(t, docs, 1)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			id, err := s.Add(ctx, Ideas, Document{"title": "x"})
			require.NoError(t, err)

			require.NoError(t, s.Delete(ctx, Ideas, id))
			_, err = s.Get(ctx, Ideas, id)
			assert.ErrorIs(t, err, types.ErrNotFound)

			assert.ErrorIs(t, s.Delete(ctx, Ideas, id), types.ErrNotFound)
		})
	}
}

func TestStore_ConcurrentAdds(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			var wg sync.WaitGroup
			errs := make(chan error, 20)
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := s.Add(ctx, Components, Document{"n": i})
					errs <- err
				}(i)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			docs, err := s.List(ctx, Components)
			require.NoError(t, err)
			assert.Len(t, docs, 20)
		})
	}
}

func TestMemoryStore_CopiesDocuments(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := Document{"title": "original"}
	id, err := s.Add(ctx, Ideas, in)
	require.NoError(t, err)
	in["title"] = "mutated"

	out, err := s.Get(ctx, Ideas, id)
	require.NoError(t, err)
	assert.Equal(t, "original", out["title"])
}

func TestMemoryStore_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Set(ctx, Components, id, Document{}))
	}
	docs, err := s.List(ctx, Components)
	require.NoError(t, err)

	var ids []string
	for _, d := range docs {
		ids = append(ids, d.ID())
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestEncodeDecode(t *testing.T) {
	type sample struct {
		ID    string   `json:"id"`
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}

	doc, err := Encode(sample{ID: "i1", Title: "Robot", Tags: []string{"IoT"}})
	require.NoError(t, err)
	assert.Equal(t, "i1", doc.ID())
	assert.Equal(t, []any{"IoT"}, doc["tags"])

	var got sample
	require.NoError(t, Decode(doc, &got))
	assert.Equal(t, "Robot", got.Title)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, types.StoreConfig{Backend: types.StoreMemory}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, types.StoreConfig{Backend: types.StoreSQLite, Path: filepath.Join(t.TempDir(), "x.db")}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, types.StoreConfig{Backend: "firestore"}, zap.NewNop())
	assert.Error(t, err)

	_, err = Open(ctx, types.StoreConfig{Backend: types.StoreDynamoDB}, zap.NewNop())
	assert.True(t, errors.Is(err, types.ErrInvalidInput))
}
