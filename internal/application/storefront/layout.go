package storefront

import (
	"strings"
	"time"

	"github.com/saanjh/storefront/internal/infrastructure/commerce"
)

// Brand copy shared by every page
const (
	BrandName    = "Saanjh Rituals"
	BrandEmail   = "hello@saanjhrituals.com"
	BrandTagline = "Ancestral botanicals meet golden-hour calm. A ritual rebirth for evening grounding."
	BrandMotto   = "Slow sensory wellness rooted in heritage"
)

// NavLink is a header or footer link
type NavLink struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// SocialLink is an external profile
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FooterColumn is a titled group of footer links
type FooterColumn struct {
	Title string    `json:"title"`
	Links []NavLink `json:"links"`
}

// Footer is the shared footer
type Footer struct {
	Tagline   string         `json:"tagline"`
	Columns   []FooterColumn `json:"columns"`
	Socials   []SocialLink   `json:"socials"`
	Email     string         `json:"email"`
	Copyright string         `json:"copyright"`
	Motto     string         `json:"motto"`
}

// Layout is the chrome around every page
type Layout struct {
	BasePath string          `json:"basePath"`
	HomePath string          `json:"homePath"`
	Nav      []NavLink       `json:"nav"`
	MenuOpen bool            `json:"menuOpen"`
	MiniCart commerce.Widget `json:"miniCart"`
	Footer   Footer          `json:"footer"`
}

var navItems = []struct{ name, path string }{
	{"Home", "/"},
	{"Shop", "/store"},
	{"About", "/about"},
	{"Journal", "/journal"},
	{"Contact", "/contact"},
}

var socials = []SocialLink{
	{Name: "Instagram", URL: "https://instagram.com/saanjhrituals"},
	{Name: "Facebook", URL: "https://facebook.com/saanjhrituals"},
	{Name: "Twitter", URL: "https://twitter.com/saanjhrituals"},
}

// Navigation builds base-path aware layouts
type Navigation struct {
	basePath string
	miniCart commerce.Widget
	now      func() time.Time
}

// NewNavigation creates a layout builder. vertical may be nil.
func NewNavigation(basePath string, vertical commerce.Vertical) *Navigation {
	n := &Navigation{basePath: strings.TrimRight(basePath, "/"), now: time.Now}
	if vertical != nil {
		n.miniCart = vertical.MiniCartWidget()
	}
	return n
}

// Path prefixes p with the base path
func (n *Navigation) Path(p string) string {
	return JoinPath(n.basePath, p)
}

// JoinPath prefixes an app path with the base path
func JoinPath(basePath, p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(basePath, "/") + p
}

// Relative strips the base path from a request path
func (n *Navigation) Relative(requestPath string) string {
	rel := strings.TrimPrefix(requestPath, n.basePath)
	if rel == "" || rel[0] != '/' {
		rel = "/" + rel
	}
	return rel
}

// Layout builds the chrome for the page at currentPath, given relative to the base path
func (n *Navigation) Layout(currentPath string, menuOpen bool) Layout {
	nav := make([]NavLink, 0, len(navItems))
	for _, item := range navItems {
		nav = append(nav, NavLink{
			Name:   item.name,
			Path:   n.Path(item.path),
			Active: isActive(item.path, currentPath),
		})
	}

	return Layout{
		BasePath: n.basePath,
		HomePath: n.Path("/"),
		Nav:      nav,
		MenuOpen: menuOpen,
		MiniCart: n.miniCart,
		Footer: Footer{
			Tagline: BrandTagline,
			Columns: []FooterColumn{
				{Title: "Shop", Links: []NavLink{
					{Name: "All Ritual Blends", Path: n.Path("/store")},
					{Name: "Cart", Path: n.Path("/cart")},
				}},
				{Title: "Explore", Links: []NavLink{
					{Name: "About Saanjh", Path: n.Path("/about")},
					{Name: "The Journal", Path: n.Path("/journal")},
					{Name: "Contact", Path: n.Path("/contact")},
				}},
			},
			Socials:   socials,
			Email:     BrandEmail,
			Copyright: "© " + n.now().Format("2006") + " " + BrandName + ". All rights reserved.",
			Motto:     BrandMotto,
		},
	}
}

// isActive marks a nav entry for the current page. Product pages belong to the shop.
func isActive(item, current string) bool {
	if current == "" {
		current = "/"
	}
	if item == "/" {
		return current == "/"
	}
	if current == item || strings.HasPrefix(current, item+"/") {
		return true
	}
	return item == "/store" && (strings.HasPrefix(current, "/products/") || current == "/cart")
}
