package tasting

import "github.com/saanjh/storefront/internal/domain/content"

// Assignment pairs a blend lacking notes with the library note chosen for it
type Assignment struct {
	Index   int
	BlendID string
	Note    Note
}

// Plan picks a library note for every blend whose tasting notes are blank.
// The note is chosen by the blend's position in the received list, so the
// same list always produces the same assignments. Blends without an id are
// still planned for display; the backfill queue skips them.
func Plan(blends []content.RitualTeaBlend) []Assignment {
	var out []Assignment
	for i, b := range blends {
		if b.HasTastingNotes() {
			continue
		}
		out = append(out, Assignment{
			Index:   i,
			BlendID: b.ID,
			Note:    NoteAt(i),
		})
	}
	return out
}

// Fill returns a copy of blends with every assignment applied.
// Blends that already carry notes are returned unchanged.
func Fill(blends []content.RitualTeaBlend, assignments []Assignment) []content.RitualTeaBlend {
	out := make([]content.RitualTeaBlend, len(blends))
	copy(out, blends)
	for _, a := range assignments {
		if a.Index < 0 || a.Index >= len(out) {
			continue
		}
		out[a.Index].TastingNotes = a.Note.Text
	}
	return out
}

// Patch is the partial record written back for an assignment
func (a Assignment) Patch() map[string]any {
	return map[string]any{
		"_id":          a.BlendID,
		"tastingNotes": a.Note.Text,
	}
}
