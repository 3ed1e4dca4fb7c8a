package storefront

import (
	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/domain/reveal"
	"github.com/saanjh/storefront/internal/domain/tasting"
	"github.com/saanjh/storefront/internal/infrastructure/commerce"
)

// Page names used for metrics and templates
const (
	PageHome    = "home"
	PageAbout   = "about"
	PageJournal = "journal"
	PageArticle = "article"
	PageContact = "contact"
	PageStore   = "store"
	PageProduct = "product"
	PageCart    = "cart"
	PageError   = "error"
)

// HomePage is the view model of the landing page
type HomePage struct {
	Pillars      []PillarCard        `json:"pillars"`
	Blends       []BlendCard         `json:"blends"`
	Ingredients  []IngredientCard    `json:"ingredients"`
	Steps        []StepCard          `json:"steps"`
	Benefits     []BenefitCard       `json:"benefits"`
	Testimonials TestimonialCarousel `json:"testimonials"`
	Origins      []OriginGroup       `json:"origins"`
	// Degraded is set when the content batch failed and sections are empty
	Degraded bool `json:"degraded"`
	// BackfillQueued counts tasting-note write-backs scheduled by this load
	BackfillQueued int `json:"backfillQueued"`
}

// PillarCard is a brand pillar with its reveal timing
type PillarCard struct {
	content.BrandPillar
	Reveal reveal.Spec `json:"reveal"`
}

// BlendCard is a featured blend with its hover overlay
type BlendCard struct {
	content.RitualTeaBlend
	Badge        string             `json:"badge"`
	DisplayPrice string             `json:"displayPrice,omitempty"`
	Overlay      tasting.Descriptor `json:"overlay"`
	// Offset staggers every other card in the grid
	Offset bool        `json:"offset"`
	Reveal reveal.Spec `json:"reveal"`
}

// IngredientCard is a featured ingredient
type IngredientCard struct {
	content.Ingredient
	Reveal reveal.Spec `json:"reveal"`
}

// StepCard is one evening ritual step
type StepCard struct {
	content.EveningRitualStep
	Reveal reveal.Spec `json:"reveal"`
}

// BenefitCard is an active wellness benefit
type BenefitCard struct {
	content.WellnessBenefit
	Reveal reveal.Spec `json:"reveal"`
}

// TestimonialCarousel is the server-rendered carousel state
type TestimonialCarousel struct {
	Items   []content.CustomerTestimonial `json:"items"`
	Active  int                           `json:"active"`
	Current *content.CustomerTestimonial  `json:"current,omitempty"`
	Prev    int                           `json:"prev"`
	Next    int                           `json:"next"`
	Dots    []CarouselDot                 `json:"dots"`
}

// CarouselDot is one jump target of the carousel
type CarouselDot struct {
	Index  int  `json:"index"`
	Active bool `json:"active"`
}

// OriginGroup holds the cards expanded from one origin point record
type OriginGroup struct {
	ID    string           `json:"id"`
	Cards []OriginCardView `json:"cards"`
}

// OriginCardView is one sustainability card
type OriginCardView struct {
	content.OriginCard
	Reveal reveal.Spec `json:"reveal"`
}

// JournalPage is the article listing
type JournalPage struct {
	Articles []ArticleCard `json:"articles"`
	Degraded bool          `json:"degraded"`
}

// ArticleCard is one entry of the listing
type ArticleCard struct {
	content.JournalArticle
	Date   string      `json:"date,omitempty"`
	Path   string      `json:"path"`
	Reveal reveal.Spec `json:"reveal"`
}

// ArticlePage is a single journal article
type ArticlePage struct {
	Article *content.JournalArticle `json:"article,omitempty"`
	Date    string                  `json:"date,omitempty"`
	// Unavailable is set when the article could not be loaded for a reason other than absence
	Unavailable bool   `json:"unavailable"`
	Notice      string `json:"notice,omitempty"`
}

// AboutPage is the brand story
type AboutPage struct {
	Hero        AboutHero      `json:"hero"`
	Story       []AboutSection `json:"story"`
	Ingredients AboutGroup     `json:"ingredients"`
	Ritual      PrincipleGroup `json:"ritual"`
	Closing     AboutClosing   `json:"closing"`
}

// AboutGroup is a titled run of image sections
type AboutGroup struct {
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Sections []AboutSection `json:"sections"`
}

// PrincipleGroup is a titled list of principles
type PrincipleGroup struct {
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle"`
	Principles []Principle `json:"principles"`
}

// AboutHero is the page banner
type AboutHero struct {
	Title    string `json:"title"`
	Image    string `json:"image"`
	ImageAlt string `json:"imageAlt"`
}

// AboutSection is a text block beside an image
type AboutSection struct {
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle,omitempty"`
	Paragraphs []string    `json:"paragraphs"`
	Image      string      `json:"image,omitempty"`
	ImageAlt   string      `json:"imageAlt,omitempty"`
	ImageFirst bool        `json:"imageFirst"`
	Reveal     reveal.Spec `json:"reveal"`
}

// Principle is one wellness principle
type Principle struct {
	Title  string      `json:"title"`
	Body   string      `json:"body"`
	Reveal reveal.Spec `json:"reveal"`
}

// AboutClosing is the final invitation
type AboutClosing struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Blessing string `json:"blessing"`
}

// StorePage is a commerce collection listing
type StorePage struct {
	Collection *commerce.Collection `json:"collection"`
	Products   []ProductCard        `json:"products"`
}

// ProductCard is a product in a listing
type ProductCard struct {
	commerce.Product
	DisplayPrice string      `json:"displayPrice"`
	Path         string      `json:"path"`
	Reveal       reveal.Spec `json:"reveal"`
}

// ProductPage is a product detail view
type ProductPage struct {
	Product      *commerce.Product `json:"product"`
	DisplayPrice string            `json:"displayPrice"`
	Cart         commerce.Widget   `json:"cart"`
}

// CartPage hosts the commerce cart widget
type CartPage struct {
	Widget commerce.Widget `json:"widget"`
}
