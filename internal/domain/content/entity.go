package content

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Entity is implemented by every record stored in a collection
type Entity interface {
	GetID() string
}

// Meta holds the system fields the backend attaches to every record
type Meta struct {
	ID          string    `json:"_id"`
	CreatedDate *FlexTime `json:"_createdDate,omitempty"`
	UpdatedDate *FlexTime `json:"_updatedDate,omitempty"`
}

// GetID returns the record identifier
func (m Meta) GetID() string {
	return m.ID
}

// BrandPillar is one of the brand's core values shown on the home page
type BrandPillar struct {
	Meta
	PillarName       string  `json:"pillarName,omitempty"`
	PillarIcon       string  `json:"pillarIcon,omitempty"`
	ShortDescription string  `json:"shortDescription,omitempty"`
	DisplayOrder     *Number `json:"displayOrder,omitempty"`
	CallToActionText string  `json:"callToActionText,omitempty"`
	CallToActionURL  string  `json:"callToActionUrl,omitempty"`
}

// RitualTeaBlend is a product blend
type RitualTeaBlend struct {
	Meta
	BlendName          string           `json:"blendName,omitempty"`
	Price              *decimal.Decimal `json:"price,omitempty"`
	KeyBenefits        string           `json:"keyBenefits,omitempty"`
	Ingredients        string           `json:"ingredients,omitempty"`
	Description        string           `json:"description,omitempty"`
	RitualInstructions string           `json:"ritualInstructions,omitempty"`
	SourcingStory      string           `json:"sourcingStory,omitempty"`
	MainImage          string           `json:"mainImage,omitempty"`
	HealingUSP         string           `json:"healingUSP,omitempty"`
	ProductSKU         string           `json:"productSKU,omitempty"`
	TastingNotes       string           `json:"tastingNotes,omitempty"`
}

// HasTastingNotes reports whether the blend carries non-blank tasting notes
func (b RitualTeaBlend) HasTastingNotes() bool {
	return strings.TrimSpace(b.TastingNotes) != ""
}

// Ingredient is a botanical used in the blends
type Ingredient struct {
	Meta
	IngredientName string `json:"ingredientName,omitempty"`
	MacroImage     string `json:"macroImage,omitempty"`
	BotanicalName  string `json:"botanicalName,omitempty"`
	Origin         string `json:"origin,omitempty"`
	Description    string `json:"description,omitempty"`
}

// EveningRitualStep is one step of the evening ritual
type EveningRitualStep struct {
	Meta
	StepNumber      *Number `json:"stepNumber,omitempty"`
	StepTitle       string  `json:"stepTitle,omitempty"`
	StepDescription string  `json:"stepDescription,omitempty"`
	Illustration    string  `json:"illustration,omitempty"`
	RitualTip       string  `json:"ritualTip,omitempty"`
}

// WellnessBenefit is a wellness claim card
type WellnessBenefit struct {
	Meta
	BenefitTitle       string  `json:"benefitTitle,omitempty"`
	BenefitDescription string  `json:"benefitDescription,omitempty"`
	BenefitImage       string  `json:"benefitImage,omitempty"`
	DisplayOrder       *Number `json:"displayOrder,omitempty"`
	IsActive           *bool   `json:"isActive,omitempty"`
}

// Active reports whether the benefit is flagged active. Absent means inactive.
func (w WellnessBenefit) Active() bool {
	return w.IsActive != nil && *w.IsActive
}

// CustomerTestimonial is a customer quote
type CustomerTestimonial struct {
	Meta
	CustomerName  string `json:"customerName,omitempty"`
	CustomerTitle string `json:"customerTitle,omitempty"`
	Quote         string `json:"quote,omitempty"`
	CustomerImage string `json:"customerImage,omitempty"`
	VideoURL      string `json:"videoUrl,omitempty"`
}

// SustainabilityOriginPoint groups three sourcing stories into one record
type SustainabilityOriginPoint struct {
	Meta
	Point1Title       string `json:"point1Title,omitempty"`
	Point1Image       string `json:"point1Image,omitempty"`
	Point1Description string `json:"point1Description,omitempty"`
	Point2Title       string `json:"point2Title,omitempty"`
	Point2Image       string `json:"point2Image,omitempty"`
	Point2Description string `json:"point2Description,omitempty"`
	Point3Title       string `json:"point3Title,omitempty"`
	Point3Image       string `json:"point3Image,omitempty"`
	Point3Description string `json:"point3Description,omitempty"`
}

// OriginCard is one of the three stories inside a SustainabilityOriginPoint
type OriginCard struct {
	Title       string `json:"title"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// Cards expands the record into its non-empty cards, in point order
func (s SustainabilityOriginPoint) Cards() []OriginCard {
	all := []OriginCard{
		{Title: s.Point1Title, Image: s.Point1Image, Description: s.Point1Description},
		{Title: s.Point2Title, Image: s.Point2Image, Description: s.Point2Description},
		{Title: s.Point3Title, Image: s.Point3Image, Description: s.Point3Description},
	}
	cards := make([]OriginCard, 0, len(all))
	for _, c := range all {
		if c.Title == "" && c.Image == "" && c.Description == "" {
			continue
		}
		cards = append(cards, c)
	}
	return cards
}

// JournalArticle is an editorial article
type JournalArticle struct {
	Meta
	Title        string    `json:"title,omitempty"`
	Content      string    `json:"content,omitempty"`
	FeatureImage string    `json:"featureImage,omitempty"`
	Author       string    `json:"author,omitempty"`
	PublishDate  *FlexTime `json:"publishDate,omitempty"`
	Excerpt      string    `json:"excerpt,omitempty"`
	ReadTime     *Number   `json:"readTime,omitempty"`
}
