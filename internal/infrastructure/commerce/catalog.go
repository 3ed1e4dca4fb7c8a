package commerce

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/saanjh/storefront/internal/domain/content"
)

// ContentCatalog serves the blends collection as a single-collection catalog.
// It stands in for the commerce vertical when none is configured.
type ContentCatalog struct {
	data        content.DataService
	defaultSlug string
	currency    string
}

// NewContentCatalog creates a catalog over the content backend
func NewContentCatalog(data content.DataService, defaultSlug, currency string) *ContentCatalog {
	if defaultSlug == "" {
		defaultSlug = "all-products"
	}
	return &ContentCatalog{data: data, defaultSlug: defaultSlug, currency: currency}
}

var _ Vertical = (*ContentCatalog)(nil)

// ProductBySlug finds the blend whose slugified name matches
func (c *ContentCatalog) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	products, err := c.products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Slug == slug {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// Collection returns every blend under the default slug
func (c *ContentCatalog) Collection(ctx context.Context, slug string) (*Collection, error) {
	if slug != c.defaultSlug {
		return nil, ErrCollectionNotFound
	}
	products, err := c.products(ctx)
	if err != nil {
		return nil, err
	}
	return &Collection{Slug: slug, Name: "All Rituals", Products: products}, nil
}

// DefaultCollectionSlug is where /store redirects
func (c *ContentCatalog) DefaultCollectionSlug() string {
	return c.defaultSlug
}

// CartWidget has no script without a commerce vertical
func (c *ContentCatalog) CartWidget() Widget {
	return Widget{Name: "cart"}
}

// MiniCartWidget has no script without a commerce vertical
func (c *ContentCatalog) MiniCartWidget() Widget {
	return Widget{Name: "mini-cart"}
}

func (c *ContentCatalog) products(ctx context.Context) ([]Product, error) {
	blends, err := content.GetAll[content.RitualTeaBlend](ctx, c.data, content.CollectionRitualTeaBlends)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	products := make([]Product, 0, len(blends))
	for _, b := range blends {
		slug := Slugify(b.BlendName)
		if slug == "" {
			slug = Slugify(b.ID)
		}
		price := decimal.Zero
		if b.Price != nil {
			price = *b.Price
		}
		products = append(products, Product{
			ID:          b.ID,
			Slug:        slug,
			Name:        b.BlendName,
			Description: b.Description,
			ImageURL:    b.MainImage,
			Price:       price,
			Currency:    c.currency,
			SKU:         b.ProductSKU,
			InStock:     true,
		})
	}
	return products, nil
}
