package commerce

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/infrastructure/cms"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Golden Hour Blend":     "golden-hour-blend",
		"  Twilight  Serenity ": "twilight-serenity",
		"Café Crème":            "cafe-creme",
		"Tulsi & Rose!":         "tulsi-rose",
		"":                      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestProduct_DisplayPrice(t *testing.T) {
	p := Product{Price: decimal.RequireFromString("24.5"), Currency: "INR"}
	assert.Equal(t, "INR 24.50", p.DisplayPrice())

	p.Currency = ""
	assert.Equal(t, "24.50", p.DisplayPrice())
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(Config{BaseURL: server.URL, APIKey: "k", WidgetScriptURL: "https://cdn.example.com/cart.js"})
	require.NoError(t, err)
	return c
}

func TestClient_ProductBySlug(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/products/golden-hour":
			_, _ = io.WriteString(w, `{"id":"p1","slug":"golden-hour","name":"Golden Hour","price":18.5,"currency":"USD","inStock":true}`)
		case "/products/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	p, err := c.ProductBySlug(context.Background(), "golden-hour")
	require.NoError(t, err)
	assert.Equal(t, "Golden Hour", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("18.50")))

	_, err = c.ProductBySlug(context.Background(), "missing")
	assert.True(t, IsNotFound(err))

	_, err = c.ProductBySlug(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, IsNotFound(err))
}

func TestClient_Collection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/collections/all-products" {
			_, _ = io.WriteString(w, `{"slug":"all-products","name":"All"}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	col, err := c.Collection(context.Background(), c.DefaultCollectionSlug())
	require.NoError(t, err)
	assert.Equal(t, "All", col.Name)
	assert.NotNil(t, col.Products)

	_, err = c.Collection(context.Background(), "teaware")
	assert.True(t, errors.Is(err, ErrCollectionNotFound))
}

func TestClient_Widgets(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	assert.Equal(t, "cart", c.CartWidget().Name)
	assert.Equal(t, "https://cdn.example.com/cart.js", c.MiniCartWidget().ScriptURL)
	assert.Equal(t, "mini-cart", c.MiniCartWidget().Attrs["data-commerce-widget"])
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	assert.Error(t, cfg.Validate())

	cfg = Config{BaseURL: "https://shop.example.com/"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "all-products", cfg.DefaultCollection)
	assert.Equal(t, "https://shop.example.com", cfg.BaseURL)
}

func TestContentCatalog(t *testing.T) {
	store := cms.NewMemoryStore()
	price := decimal.RequireFromString("22")
	require.NoError(t, store.Seed(content.CollectionRitualTeaBlends,
		content.RitualTeaBlend{Meta: content.Meta{ID: "b1"}, BlendName: "Golden Hour", Price: &price},
		content.RitualTeaBlend{Meta: content.Meta{ID: "b2"}, BlendName: "Moonlight Meditation"},
	))

	catalog := NewContentCatalog(store, "", "INR")
	ctx := context.Background()

	col, err := catalog.Collection(ctx, catalog.DefaultCollectionSlug())
	require.NoError(t, err)
	require.Len(t, col.Products, 2)
	assert.Equal(t, "golden-hour", col.Products[0].Slug)
	assert.Equal(t, "INR 22.00", col.Products[0].DisplayPrice())
	assert.True(t, col.Products[1].Price.IsZero())

	p, err := catalog.ProductBySlug(ctx, "moonlight-meditation")
	require.NoError(t, err)
	assert.Equal(t, "b2", p.ID)

	_, err = catalog.ProductBySlug(ctx, "nope")
	assert.True(t, IsNotFound(err))

	_, err = catalog.Collection(ctx, "teaware")
	assert.True(t, IsNotFound(err))

	store.FailWith = errors.New("down")
	_, err = catalog.Collection(ctx, "all-products")
	assert.ErrorIs(t, err, ErrUnavailable)
}
