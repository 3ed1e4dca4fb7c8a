package tasting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saanjh/storefront/internal/domain/content"
)

func TestLibrary(t *testing.T) {
	lib := Library()
	require.Len(t, lib, 8)
	assert.Equal(t, "goldenHour", lib[0].Key)
	assert.Equal(t, "sacredStillness", lib[7].Key)
	for _, n := range lib {
		assert.NotEmpty(t, n.Text)
	}

	lib[0].Text = "changed"
	assert.NotEqual(t, "changed", NoteAt(0).Text)
}

func TestOverlayAt_Cycles(t *testing.T) {
	require.Len(t, OverlayDescriptors(), 8)
	assert.Equal(t, "Golden Awakening", OverlayAt(0).Keyword)
	assert.Equal(t, "Deep Surrender", OverlayAt(7).Keyword)
	assert.Equal(t, "Golden Awakening", OverlayAt(8).Keyword)
	assert.Equal(t, "Twilight Embrace", OverlayAt(17).Keyword)
	assert.Equal(t, "Deep Surrender", OverlayAt(-1).Keyword)
}

func TestPlan(t *testing.T) {
	blends := make([]content.RitualTeaBlend, 10)
	for i := range blends {
		blends[i].ID = string(rune('a' + i))
	}
	blends[1].TastingNotes = "Already described."
	blends[2].TastingNotes = "   "

	plan := Plan(blends)

	require.Len(t, plan, 9)
	lib := Library()
	for _, a := range plan {
		assert.NotEqual(t, 1, a.Index)
		assert.Equal(t, lib[a.Index%8], a.Note)
		assert.Equal(t, blends[a.Index].ID, a.BlendID)
	}
	// whitespace-only notes are treated as blank
	assert.Equal(t, 2, plan[1].Index)
	// index 9 wraps to the second library entry
	assert.Equal(t, "twilightSerenity", plan[8].Note.Key)
}

func TestPlan_NothingToDo(t *testing.T) {
	blends := []content.RitualTeaBlend{{TastingNotes: "x"}, {TastingNotes: "y"}}
	assert.Empty(t, Plan(blends))
	assert.Empty(t, Plan(nil))
}

func TestPlan_BlendWithoutID(t *testing.T) {
	blends := []content.RitualTeaBlend{{}, {Meta: content.Meta{ID: "b1"}}}

	plan := Plan(blends)

	require.Len(t, plan, 2)
	assert.Empty(t, plan[0].BlendID)
	assert.Equal(t, NoteAt(0).Text, Fill(blends, plan)[0].TastingNotes)
}

func TestFill(t *testing.T) {
	blends := []content.RitualTeaBlend{
		{Meta: content.Meta{ID: "b0"}},
		{Meta: content.Meta{ID: "b1"}, TastingNotes: "Kept."},
	}

	filled := Fill(blends, Plan(blends))

	assert.Equal(t, NoteAt(0).Text, filled[0].TastingNotes)
	assert.Equal(t, "Kept.", filled[1].TastingNotes)
	assert.Empty(t, blends[0].TastingNotes)
}

func TestAssignment_Patch(t *testing.T) {
	a := Assignment{Index: 3, BlendID: "b3", Note: NoteAt(3)}
	patch := a.Patch()

	assert.Equal(t, "b3", patch["_id"])
	assert.Equal(t, NoteAt(3).Text, patch["tastingNotes"])
	assert.Len(t, patch, 2)
}
