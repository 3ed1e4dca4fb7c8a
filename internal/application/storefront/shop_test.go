package storefront

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/infrastructure/cms"
	"github.com/saanjh/storefront/internal/infrastructure/commerce"
)

func newCatalog(t *testing.T) (*cms.MemoryStore, *commerce.ContentCatalog) {
	t.Helper()
	store := cms.NewMemoryStore()
	price := decimal.RequireFromString("18")
	seed(t, store, content.CollectionRitualTeaBlends,
		content.RitualTeaBlend{Meta: content.Meta{ID: "b1"}, BlendName: "Saffron Dusk", Price: &price},
		content.RitualTeaBlend{Meta: content.Meta{ID: "b2"}, BlendName: "Rose Chai", Price: &price},
	)
	return store, commerce.NewContentCatalog(store, "all-rituals", "USD")
}

func TestShopService_StoreRedirect(t *testing.T) {
	_, catalog := newCatalog(t)
	svc := NewShopService(catalog, nil, nil)
	assert.Equal(t, "/store/all-rituals", svc.StoreRedirect())
}

func TestShopService_Store(t *testing.T) {
	_, catalog := newCatalog(t)
	svc := NewShopService(catalog, nil, nil)

	page, err := svc.Store(context.Background(), "all-rituals")
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "/products/saffron-dusk", page.Products[0].Path)
	assert.Equal(t, "USD 18.00", page.Products[0].DisplayPrice)
	assert.Equal(t, 100*time.Millisecond, page.Products[1].Reveal.Delay)

	_, err = svc.Store(context.Background(), "teaware")
	assert.True(t, commerce.IsNotFound(err))
}

func TestShopService_Product(t *testing.T) {
	_, catalog := newCatalog(t)
	svc := NewShopService(catalog, nil, nil)

	page, err := svc.Product(context.Background(), "rose-chai")
	require.NoError(t, err)
	assert.Equal(t, "Rose Chai", page.Product.Name)
	assert.Equal(t, "cart", page.Cart.Name)

	_, err = svc.Product(context.Background(), "missing")
	assert.ErrorIs(t, err, commerce.ErrProductNotFound)
}

func TestShopService_LoaderFailureIsLogged(t *testing.T) {
	store, catalog := newCatalog(t)
	store.FailWith = errors.New("backend down")
	core, logs := observer.New(zap.ErrorLevel)
	svc := NewShopService(catalog, nil, zap.New(core))

	_, err := svc.Product(context.Background(), "rose-chai")
	require.Error(t, err)
	assert.False(t, commerce.IsNotFound(err))
	assert.Equal(t, 1, logs.FilterMessage("Commerce loader failed").Len())
}

func TestShopService_Widgets(t *testing.T) {
	_, catalog := newCatalog(t)
	svc := NewShopService(catalog, nil, nil)

	assert.Equal(t, "cart", svc.Cart(context.Background()).Widget.Name)
	assert.Equal(t, "mini-cart", svc.MiniCart().Name)
}
