package storefront

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/saanjh/storefront/internal/domain/reveal"
	"github.com/saanjh/storefront/internal/infrastructure/commerce"
	"github.com/saanjh/storefront/internal/infrastructure/logger"
	"github.com/saanjh/storefront/internal/infrastructure/telemetry"
)

// ShopService loads the commerce-backed pages. Catalog state lives in the
// commerce vertical; this service only shapes it for rendering.
type ShopService struct {
	vertical commerce.Vertical
	metrics  *telemetry.StorefrontMetrics
	logger   *zap.Logger
}

// NewShopService creates a ShopService
func NewShopService(vertical commerce.Vertical, metrics *telemetry.StorefrontMetrics, logger *zap.Logger) *ShopService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopService{vertical: vertical, metrics: metrics, logger: logger}
}

// StoreRedirect is the path /store forwards to
func (s *ShopService) StoreRedirect() string {
	return "/store/" + s.vertical.DefaultCollectionSlug()
}

// Store loads a collection listing
func (s *ShopService) Store(ctx context.Context, categorySlug string) (*StorePage, error) {
	ctx, span := telemetry.StartSpan(ctx, "storefront.Store", trace.SpanKindInternal,
		telemetry.AttrPage.String(PageStore), attribute.String("commerce.collection", categorySlug))
	collection, err := s.vertical.Collection(ctx, categorySlug)
	telemetry.EndSpan(span, err)
	if err != nil {
		s.loaderFailed(ctx, PageStore, err)
		return nil, err
	}
	s.metrics.RecordPageLoad(ctx, PageStore, telemetry.OutcomeOK)

	page := &StorePage{Collection: collection, Products: make([]ProductCard, 0, len(collection.Products))}
	for i, p := range collection.Products {
		page.Products = append(page.Products, ProductCard{
			Product:      p,
			DisplayPrice: p.DisplayPrice(),
			Path:         "/products/" + p.Slug,
			Reveal:       reveal.Staggered(i, CardStagger),
		})
	}
	return page, nil
}

// Product loads a product detail page
func (s *ShopService) Product(ctx context.Context, slug string) (*ProductPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "storefront.Product", trace.SpanKindInternal,
		telemetry.AttrPage.String(PageProduct), attribute.String("commerce.product", slug))
	product, err := s.vertical.ProductBySlug(ctx, slug)
	telemetry.EndSpan(span, err)
	if err != nil {
		s.loaderFailed(ctx, PageProduct, err)
		return nil, err
	}
	s.metrics.RecordPageLoad(ctx, PageProduct, telemetry.OutcomeOK)

	return &ProductPage{
		Product:      product,
		DisplayPrice: product.DisplayPrice(),
		Cart:         s.vertical.CartWidget(),
	}, nil
}

// Cart hosts the commerce cart widget
func (s *ShopService) Cart(ctx context.Context) *CartPage {
	s.metrics.RecordPageLoad(ctx, PageCart, telemetry.OutcomeOK)
	return &CartPage{Widget: s.vertical.CartWidget()}
}

// MiniCart is the header widget
func (s *ShopService) MiniCart() commerce.Widget {
	return s.vertical.MiniCartWidget()
}

func (s *ShopService) loaderFailed(ctx context.Context, page string, err error) {
	if commerce.IsNotFound(err) {
		s.metrics.RecordPageLoad(ctx, page, telemetry.OutcomeNotFound)
		return
	}
	s.metrics.RecordPageLoad(ctx, page, telemetry.OutcomeError)
	logger.WithLogger(ctx, s.logger).Error("Commerce loader failed", zap.String("page", page), zap.Error(err))
}
