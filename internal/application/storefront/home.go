package storefront

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/saanjh/storefront/internal/domain/carousel"
	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/domain/curation"
	"github.com/saanjh/storefront/internal/domain/reveal"
	"github.com/saanjh/storefront/internal/domain/tasting"
	"github.com/saanjh/storefront/internal/infrastructure/logger"
	"github.com/saanjh/storefront/internal/infrastructure/telemetry"
)

// Reveal stagger steps per section
const (
	PillarStagger  = 150 * time.Millisecond
	CardStagger    = 100 * time.Millisecond
	OriginStagger  = 150 * time.Millisecond
	defaultBadge   = "Ritual Blend"
	currencySymbol = "$"
)

type homeBatch struct {
	pillars      []content.BrandPillar
	blends       []content.RitualTeaBlend
	ingredients  []content.Ingredient
	steps        []content.EveningRitualStep
	benefits     []content.WellnessBenefit
	testimonials []content.CustomerTestimonial
	origins      []content.SustainabilityOriginPoint
}

// Home builds the landing page. The seven collections are read together; if
// any read fails the whole batch is discarded and every section renders empty.
// testimonial selects the active carousel entry.
func (s *PageService) Home(ctx context.Context, testimonial int) *HomePage {
	ctx, span := telemetry.StartSpan(ctx, "storefront.Home", trace.SpanKindInternal,
		telemetry.AttrPage.String(PageHome))
	var spanErr error
	defer func() { telemetry.EndSpan(span, spanErr) }()

	batch, err := s.fetchHome(ctx)
	if err != nil {
		spanErr = err
		s.record(ctx, PageHome, err)
		logger.WithLogger(ctx, s.logger).Warn("Home content unavailable, rendering empty sections", zap.Error(err))
		return &HomePage{Degraded: true, Testimonials: buildCarousel(nil, testimonial)}
	}

	page := &HomePage{}

	// Notes are assigned by position in the list as received
	plan := tasting.Plan(batch.blends)
	blends := tasting.Fill(batch.blends, plan)
	if len(plan) > 0 && s.backfill != nil {
		page.BackfillQueued = s.backfill.Enqueue(ctx, plan...)
	}
	span.SetAttributes(attribute.Int("storefront.backfill_planned", len(plan)))

	for i, p := range curation.Apply(batch.pillars, curation.PillarsByDisplayOrder()) {
		page.Pillars = append(page.Pillars, PillarCard{BrandPillar: p, Reveal: reveal.Staggered(i, PillarStagger)})
	}
	for i, b := range curation.Apply(blends, curation.FeaturedBlends()) {
		page.Blends = append(page.Blends, newBlendCard(i, b))
	}
	for i, in := range curation.Apply(batch.ingredients, curation.FeaturedIngredients()) {
		page.Ingredients = append(page.Ingredients, IngredientCard{Ingredient: in, Reveal: reveal.Staggered(i, CardStagger)})
	}
	for _, st := range curation.Apply(batch.steps, curation.RitualSteps()) {
		page.Steps = append(page.Steps, StepCard{EveningRitualStep: st, Reveal: reveal.NewSpec(0)})
	}
	for i, b := range curation.Apply(batch.benefits, curation.ActiveBenefits()) {
		page.Benefits = append(page.Benefits, BenefitCard{WellnessBenefit: b, Reveal: reveal.Staggered(i, CardStagger)})
	}
	page.Testimonials = buildCarousel(batch.testimonials, testimonial)
	for _, o := range batch.origins {
		group := OriginGroup{ID: o.ID}
		for i, c := range o.Cards() {
			group.Cards = append(group.Cards, OriginCardView{OriginCard: c, Reveal: reveal.Staggered(i, OriginStagger)})
		}
		page.Origins = append(page.Origins, group)
	}

	s.record(ctx, PageHome, nil)
	return page
}

func (s *PageService) fetchHome(ctx context.Context) (*homeBatch, error) {
	var b homeBatch
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		b.pillars, err = content.GetAll[content.BrandPillar](gctx, s.data, content.CollectionBrandPillars)
		return err
	})
	g.Go(func() (err error) {
		b.blends, err = content.GetAll[content.RitualTeaBlend](gctx, s.data, content.CollectionRitualTeaBlends)
		return err
	})
	g.Go(func() (err error) {
		b.ingredients, err = content.GetAll[content.Ingredient](gctx, s.data, content.CollectionIngredients)
		return err
	})
	g.Go(func() (err error) {
		b.steps, err = content.GetAll[content.EveningRitualStep](gctx, s.data, content.CollectionEveningRitualSteps)
		return err
	})
	g.Go(func() (err error) {
		b.benefits, err = content.GetAll[content.WellnessBenefit](gctx, s.data, content.CollectionWellnessBenefits)
		return err
	})
	g.Go(func() (err error) {
		b.testimonials, err = content.GetAll[content.CustomerTestimonial](gctx, s.data, content.CollectionTestimonials)
		return err
	})
	g.Go(func() (err error) {
		b.origins, err = content.GetAll[content.SustainabilityOriginPoint](gctx, s.data, content.CollectionOriginPoints)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}

func newBlendCard(i int, b content.RitualTeaBlend) BlendCard {
	card := BlendCard{
		RitualTeaBlend: b,
		Badge:          b.HealingUSP,
		Overlay:        tasting.OverlayAt(i),
		Offset:         i%2 != 0,
		Reveal:         reveal.Staggered(i, CardStagger),
	}
	if card.Badge == "" {
		card.Badge = defaultBadge
	}
	if b.Price != nil {
		card.DisplayPrice = currencySymbol + b.Price.StringFixed(2)
	}
	return card
}

// buildCarousel positions the carousel at the requested entry. Out-of-range
// requests keep the first entry active.
func buildCarousel(items []content.CustomerTestimonial, requested int) TestimonialCarousel {
	c := carousel.New(len(items), 0)
	c.JumpTo(requested)

	tc := TestimonialCarousel{
		Items:  items,
		Active: c.Active(),
		Prev:   c.PrevIndex(),
		Next:   c.NextIndex(),
	}
	if tc.Items == nil {
		tc.Items = []content.CustomerTestimonial{}
	}
	if c.Count() > 0 {
		current := items[c.Active()]
		tc.Current = &current
	}
	for i := range items {
		tc.Dots = append(tc.Dots, CarouselDot{Index: i, Active: i == c.Active()})
	}
	return tc
}
