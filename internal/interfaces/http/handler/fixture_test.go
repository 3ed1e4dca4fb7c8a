package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saanjh/storefront/internal/application/backfill"
	contactapp "github.com/saanjh/storefront/internal/application/contact"
	"github.com/saanjh/storefront/internal/application/storefront"
	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/infrastructure/cache"
	"github.com/saanjh/storefront/internal/infrastructure/cms"
	"github.com/saanjh/storefront/internal/infrastructure/commerce"
	"github.com/saanjh/storefront/internal/interfaces/http/middleware"
	"github.com/saanjh/storefront/internal/interfaces/web"
)

const testBasePath = "/shop"

type fixture struct {
	engine   *gin.Engine
	store    *cms.MemoryStore
	repo     *memoryContactRepo
	failures *cache.MemoryFailureLog
	pages    *PageHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	middleware.SetupValidator()

	store := cms.NewMemoryStore()
	price := decimal.NewFromInt(18)
	require.NoError(t, store.Seed(content.CollectionRitualTeaBlends,
		content.RitualTeaBlend{Meta: content.Meta{ID: "b1"}, BlendName: "Moon Milk", Price: &price, Description: "Warm and slow."},
	))
	require.NoError(t, store.Seed(content.CollectionJournalArticles,
		content.JournalArticle{Meta: content.Meta{ID: "a1"}, Title: "Slow Evenings", Content: "Breathe.\n\nSip."},
	))
	require.NoError(t, store.Seed(content.CollectionTestimonials,
		content.CustomerTestimonial{Meta: content.Meta{ID: "t1"}, CustomerName: "Asha", Quote: "Calm in a cup"},
		content.CustomerTestimonial{Meta: content.Meta{ID: "t2"}, CustomerName: "Ravi", Quote: "My evening anchor"},
	))

	catalog := commerce.NewContentCatalog(store, "", "USD")
	nav := storefront.NewNavigation(testBasePath, catalog)
	pageService := storefront.NewPageService(store, nil, zap.NewNop())
	shop := storefront.NewShopService(catalog, nil, zap.NewNop())
	repo := &memoryContactRepo{}
	contactService := contactapp.NewService(repo, nil, 2, nil, zap.NewNop())

	failures := cache.NewMemoryFailureLog(10)
	dedupe := cache.NewInMemoryIdempotencyStore(0)
	t.Cleanup(func() { _ = dedupe.Close() })
	queue := backfill.NewQueue(backfill.DefaultConfig(), store, dedupe, failures, zap.NewNop())

	renderer, err := web.NewRenderer(testBasePath)
	require.NoError(t, err)

	engine := gin.New()
	engine.HTMLRender = renderer

	pages := NewPageHandler(nav, pageService, shop, contactService)
	base := engine.Group(testBasePath)
	base.GET("/", pages.Home)
	base.GET("/about", pages.About)
	base.GET("/journal", pages.Journal)
	base.GET("/journal/:id", pages.Article)
	base.GET("/contact", pages.ContactForm)
	base.POST("/contact", pages.SubmitContact)
	base.GET("/store", pages.StoreRedirect)
	base.GET("/store/:categorySlug", pages.Store)
	base.GET("/products/:slug", pages.Product)
	base.GET("/cart", pages.Cart)

	api := base.Group("/api/v1")
	storefrontAPI := NewStorefrontHandler(pageService)
	api.GET("/pages/home", storefrontAPI.Home)
	api.GET("/pages/about", storefrontAPI.About)
	api.GET("/pages/journal", storefrontAPI.Journal)
	api.GET("/pages/journal/:id", storefrontAPI.Article)
	api.POST("/contact", NewContactHandler(contactService).Submit)
	backfillAPI := NewBackfillHandler(queue)
	api.GET("/backfill/failures", backfillAPI.Failures)
	api.GET("/backfill/stats", backfillAPI.Stats)

	return &fixture{engine: engine, store: store, repo: repo, failures: failures, pages: pages}
}

func (f *fixture) do(method, target, contentType, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *fixture) get(target string) *httptest.ResponseRecorder {
	return f.do(http.MethodGet, target, "", "")
}
