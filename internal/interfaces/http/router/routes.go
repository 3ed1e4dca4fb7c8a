package router

import (
	"github.com/gin-gonic/gin"

	"github.com/saanjh/storefront/internal/interfaces/http/handler"
)

// Handlers are the endpoints the storefront mounts
type Handlers struct {
	Pages      *handler.PageHandler
	Storefront *handler.StorefrontHandler
	Contact    *handler.ContactHandler
	System     *handler.SystemHandler
	// Backfill is nil when write-backs are disabled
	Backfill *handler.BackfillHandler
	// ContactLimit throttles contact submissions; nil disables it
	ContactLimit gin.HandlerFunc
}

// Mount registers the storefront pages, the JSON mirror and the health
// endpoint. /health stays at the root so probes do not depend on the base path.
func (r *Router) Mount(h Handlers) *Router {
	submit := func(final gin.HandlerFunc) []gin.HandlerFunc {
		if h.ContactLimit == nil {
			return []gin.HandlerFunc{final}
		}
		return []gin.HandlerFunc{h.ContactLimit, final}
	}

	pages := NewDomainGroup("pages", "")
	pages.GET("/", h.Pages.Home).
		GET("/about", h.Pages.About).
		GET("/journal", h.Pages.Journal).
		GET("/journal/:id", h.Pages.Article).
		GET("/contact", h.Pages.ContactForm).
		POST("/contact", submit(h.Pages.SubmitContact)...).
		GET("/products/:slug", h.Pages.Product).
		GET("/store", h.Pages.StoreRedirect).
		GET("/store/:categorySlug", h.Pages.Store).
		GET("/cart", h.Pages.Cart)
	r.RegisterPages(pages)

	pageAPI := NewDomainGroup("pages", "/pages")
	pageAPI.GET("/home", h.Storefront.Home).
		GET("/about", h.Storefront.About).
		GET("/journal", h.Storefront.Journal).
		GET("/journal/:id", h.Storefront.Article)

	contactAPI := NewDomainGroup("contact", "/contact")
	contactAPI.POST("", submit(h.Contact.Submit)...)

	systemAPI := NewDomainGroup("system", "/system")
	systemAPI.GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping)

	r.Register(pageAPI).
		Register(contactAPI).
		Register(systemAPI)

	if h.Backfill != nil {
		backfillAPI := NewDomainGroup("backfill", "/backfill")
		backfillAPI.GET("/failures", h.Backfill.Failures).
			GET("/stats", h.Backfill.Stats)
		r.Register(backfillAPI)
	}

	r.engine.GET("/health", h.System.Health)
	return r
}
