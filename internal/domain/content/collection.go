package content

// Collection names a collection on the content backend.
type Collection string

// Collections served by the content backend.
const (
	CollectionBrandPillars       Collection = "brandpillars"
	CollectionRitualTeaBlends    Collection = "ritualteablends"
	CollectionIngredients        Collection = "ingredients"
	CollectionEveningRitualSteps Collection = "eveningritualsteps"
	CollectionWellnessBenefits   Collection = "wellnessbenefits"
	CollectionTestimonials       Collection = "customertestimonials"
	CollectionOriginPoints       Collection = "sustainabilityoriginpoints"
	CollectionJournalArticles    Collection = "journalarticles"
)

var knownCollections = map[Collection]struct{}{
	CollectionBrandPillars:       {},
	CollectionRitualTeaBlends:    {},
	CollectionIngredients:        {},
	CollectionEveningRitualSteps: {},
	CollectionWellnessBenefits:   {},
	CollectionTestimonials:       {},
	CollectionOriginPoints:       {},
	CollectionJournalArticles:    {},
}

// String returns the wire name of the collection
func (c Collection) String() string {
	return string(c)
}

// IsValid reports whether the collection is one the storefront reads
func (c Collection) IsValid() bool {
	_, ok := knownCollections[c]
	return ok
}

// AllCollections returns every known collection in a stable order
func AllCollections() []Collection {
	return []Collection{
		CollectionBrandPillars,
		CollectionRitualTeaBlends,
		CollectionIngredients,
		CollectionEveningRitualSteps,
		CollectionWellnessBenefits,
		CollectionTestimonials,
		CollectionOriginPoints,
		CollectionJournalArticles,
	}
}
