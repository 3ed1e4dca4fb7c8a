package cms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saanjh/storefront/internal/domain/content"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Seed(content.CollectionRitualTeaBlends,
		content.RitualTeaBlend{Meta: content.Meta{ID: "b1"}, BlendName: "Golden Hour"},
		map[string]any{"_id": "b2", "blendName": "Twilight"},
	))

	ctx := context.Background()

	blends, err := content.GetAll[content.RitualTeaBlend](ctx, store, content.CollectionRitualTeaBlends)
	require.NoError(t, err)
	require.Len(t, blends, 2)
	assert.Equal(t, "Golden Hour", blends[0].BlendName)
	assert.Equal(t, "Twilight", blends[1].BlendName)

	_, err = store.Update(ctx, content.CollectionRitualTeaBlends, map[string]any{"_id": "b2", "tastingNotes": "Lavender."})
	require.NoError(t, err)

	b2, err := content.GetByID[content.RitualTeaBlend](ctx, store, content.CollectionRitualTeaBlends, "b2")
	require.NoError(t, err)
	assert.Equal(t, "Lavender.", b2.TastingNotes)
	assert.Equal(t, "Twilight", b2.BlendName)

	_, err = store.GetByID(ctx, content.CollectionRitualTeaBlends, "nope")
	assert.ErrorIs(t, err, content.ErrNotFound)

	_, err = store.Update(ctx, content.CollectionRitualTeaBlends, map[string]any{"_id": "nope"})
	assert.ErrorIs(t, err, content.ErrNotFound)

	empty, err := store.GetAll(ctx, content.CollectionIngredients)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}

func TestMemoryStore_Failures(t *testing.T) {
	store := NewMemoryStore()
	boom := errors.New("boom")
	store.FailWith = boom

	_, err := store.GetAll(context.Background(), content.CollectionIngredients)
	assert.ErrorIs(t, err, boom)

	store.FailWith = nil
	_, err = store.GetAll(context.Background(), content.Collection("orders"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.GetAll(ctx, content.CollectionIngredients)
	assert.ErrorIs(t, err, context.Canceled)
}
