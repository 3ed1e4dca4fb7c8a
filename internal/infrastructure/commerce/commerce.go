// Package commerce talks to the external commerce vertical that owns the
// catalog, cart and checkout.
package commerce

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/saanjh/storefront/internal/domain/shared"
)

// Errors returned by verticals
var (
	ErrProductNotFound    = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	ErrCollectionNotFound = shared.NewDomainError("COLLECTION_NOT_FOUND", "Collection not found")
	ErrUnavailable        = shared.ErrCommerceFailure
)

// Product is a sellable item as the commerce vertical describes it
type Product struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	InStock     bool            `json:"inStock"`
}

// DisplayPrice formats the price with two decimals and the currency code
func (p Product) DisplayPrice() string {
	amount := p.Price.StringFixed(2)
	if p.Currency == "" {
		return amount
	}
	return p.Currency + " " + amount
}

// Collection is a category listing
type Collection struct {
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// Widget describes an embeddable commerce component the page hosts
type Widget struct {
	Name      string            `json:"name"`
	ScriptURL string            `json:"scriptUrl,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// Vertical is the commerce capability the storefront depends on
type Vertical interface {
	ProductBySlug(ctx context.Context, slug string) (*Product, error)
	Collection(ctx context.Context, slug string) (*Collection, error)
	DefaultCollectionSlug() string
	CartWidget() Widget
	MiniCartWidget() Widget
}

// IsNotFound reports whether err means a missing product or collection
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrCollectionNotFound)
}

var slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns a display name into a URL slug, folding accents
func Slugify(name string) string {
	folded, _, err := transform.String(slugFolder, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
