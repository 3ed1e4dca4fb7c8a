package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	items map[Collection][]json.RawMessage
	err   error
}

func (s *stubService) GetAll(_ context.Context, c Collection) (*ItemsResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ItemsResult{Items: s.items[c]}, nil
}

func (s *stubService) GetByID(_ context.Context, c Collection, id string) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, raw := range s.items[c] {
		var m Meta
		if err := json.Unmarshal(raw, &m); err == nil && m.ID == id {
			return raw, nil
		}
	}
	return nil, ErrNotFound
}

func (s *stubService) Update(context.Context, Collection, map[string]any) (json.RawMessage, error) {
	return nil, errors.New("not implemented")
}

func TestGetAll(t *testing.T) {
	svc := &stubService{items: map[Collection][]json.RawMessage{
		CollectionBrandPillars: {
			json.RawMessage(`{"_id":"p1","pillarName":"Ritual","displayOrder":2}`),
			json.RawMessage(`{"_id":"p2","pillarName":"Purity"}`),
		},
	}}

	pillars, err := GetAll[BrandPillar](context.Background(), svc, CollectionBrandPillars)
	require.NoError(t, err)
	require.Len(t, pillars, 2)
	assert.Equal(t, "Ritual", pillars[0].PillarName)
	require.NotNil(t, pillars[0].DisplayOrder.Float())
	assert.Equal(t, 2.0, *pillars[0].DisplayOrder.Float())
	assert.Nil(t, pillars[1].DisplayOrder.Float())
}

func TestGetAll_LooseNumbers(t *testing.T) {
	svc := &stubService{items: map[Collection][]json.RawMessage{
		CollectionBrandPillars: {
			json.RawMessage(`{"_id":"p1","displayOrder":1.5}`),
			json.RawMessage(`{"_id":"p2","displayOrder":"3"}`),
			json.RawMessage(`{"_id":"p3","displayOrder":"first"}`),
			json.RawMessage(`{"_id":"p4","displayOrder":null}`),
			json.RawMessage(`{"_id":"p5","displayOrder":"NaN"}`),
			json.RawMessage(`{"_id":"p6","displayOrder":{"value":2}}`),
		},
	}}

	pillars, err := GetAll[BrandPillar](context.Background(), svc, CollectionBrandPillars)
	require.NoError(t, err)
	require.Len(t, pillars, 6)
	assert.Equal(t, 1.5, *pillars[0].DisplayOrder.Float())
	assert.Equal(t, 3.0, *pillars[1].DisplayOrder.Float())
	assert.Nil(t, pillars[2].DisplayOrder.Float())
	assert.Nil(t, pillars[3].DisplayOrder.Float())
	assert.Nil(t, pillars[4].DisplayOrder.Float())
	assert.Nil(t, pillars[5].DisplayOrder.Float())
	assert.Equal(t, "p6", pillars[5].ID)
}

func TestGetAll_EmptyCollection(t *testing.T) {
	svc := &stubService{items: map[Collection][]json.RawMessage{}}

	blends, err := GetAll[RitualTeaBlend](context.Background(), svc, CollectionRitualTeaBlends)
	require.NoError(t, err)
	assert.NotNil(t, blends)
	assert.Empty(t, blends)
}

func TestGetAll_DecodeError(t *testing.T) {
	svc := &stubService{items: map[Collection][]json.RawMessage{
		CollectionRitualTeaBlends: {json.RawMessage(`{"_id":"b1","price":"not-a-price"}`)},
	}}

	_, err := GetAll[RitualTeaBlend](context.Background(), svc, CollectionRitualTeaBlends)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ritualteablends")
}

func TestGetAll_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	svc := &stubService{err: boom}

	_, err := GetAll[Ingredient](context.Background(), svc, CollectionIngredients)
	assert.ErrorIs(t, err, boom)
}

func TestGetByID(t *testing.T) {
	svc := &stubService{items: map[Collection][]json.RawMessage{
		CollectionJournalArticles: {json.RawMessage(`{"_id":"a1","title":"Steeping slowly","publishDate":"2024-06-01","readTime":5}`)},
	}}

	article, err := GetByID[JournalArticle](context.Background(), svc, CollectionJournalArticles, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Steeping slowly", article.Title)
	assert.Equal(t, 5, article.ReadTime.Int())

	_, err = GetByID[JournalArticle](context.Background(), svc, CollectionJournalArticles, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_IsValid(t *testing.T) {
	for _, c := range AllCollections() {
		assert.True(t, c.IsValid(), c.String())
	}
	assert.False(t, Collection("orders").IsValid())
}

func TestSustainabilityOriginPoint_Cards(t *testing.T) {
	point := SustainabilityOriginPoint{
		Point1Title:       "Assam",
		Point1Description: "Hand picked",
		Point3Title:       "Nilgiri",
	}

	cards := point.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "Assam", cards[0].Title)
	assert.Equal(t, "Nilgiri", cards[1].Title)
}

func TestWellnessBenefit_Active(t *testing.T) {
	yes, no := true, false
	assert.True(t, WellnessBenefit{IsActive: &yes}.Active())
	assert.False(t, WellnessBenefit{IsActive: &no}.Active())
	assert.False(t, WellnessBenefit{}.Active())
}

func TestPatchID(t *testing.T) {
	id, ok := PatchID(map[string]any{"_id": "b1", "tastingNotes": "x"})
	assert.True(t, ok)
	assert.Equal(t, "b1", id)

	_, ok = PatchID(map[string]any{"tastingNotes": "x"})
	assert.False(t, ok)

	_, ok = PatchID(map[string]any{"_id": 42})
	assert.False(t, ok)
}
