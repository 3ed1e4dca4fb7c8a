package curation

import (
	"time"

	"github.com/saanjh/storefront/internal/domain/content"
)

// Home page section sizes
const (
	HomeBlendLimit      = 4
	HomeIngredientLimit = 6
	HomeBenefitLimit    = 6
)

// PillarsByDisplayOrder orders brand pillars ascending by displayOrder
func PillarsByDisplayOrder() Spec[content.BrandPillar] {
	return Spec[content.BrandPillar]{
		Key: ByNumber(func(p content.BrandPillar) *float64 { return p.DisplayOrder.Float() }),
	}
}

// FeaturedBlends keeps the first blends as received
func FeaturedBlends() Spec[content.RitualTeaBlend] {
	return First[content.RitualTeaBlend](HomeBlendLimit)
}

// FeaturedIngredients keeps the first ingredients as received
func FeaturedIngredients() Spec[content.Ingredient] {
	return First[content.Ingredient](HomeIngredientLimit)
}

// RitualSteps orders ritual steps ascending by stepNumber
func RitualSteps() Spec[content.EveningRitualStep] {
	return Spec[content.EveningRitualStep]{
		Key: ByNumber(func(s content.EveningRitualStep) *float64 { return s.StepNumber.Float() }),
	}
}

// ActiveBenefits keeps active benefits ordered by displayOrder, at most six
func ActiveBenefits() Spec[content.WellnessBenefit] {
	return Spec[content.WellnessBenefit]{
		Filter: content.WellnessBenefit.Active,
		Key:    ByNumber(func(b content.WellnessBenefit) *float64 { return b.DisplayOrder.Float() }),
		Limit:  HomeBenefitLimit,
	}
}

// JournalNewestFirst orders articles by publishDate, newest first.
// Articles without a date fall to the end.
func JournalNewestFirst() Spec[content.JournalArticle] {
	return Spec[content.JournalArticle]{
		Key: ByTime(func(a content.JournalArticle) *time.Time {
			return a.PublishDate.TimePtr()
		}),
		Descending: true,
	}
}
