package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	contactapp "github.com/saanjh/storefront/internal/application/contact"
	"github.com/saanjh/storefront/internal/application/storefront"
	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/domain/shared"
	"github.com/saanjh/storefront/internal/infrastructure/commerce"
	"github.com/saanjh/storefront/internal/interfaces/http/middleware"
	"github.com/saanjh/storefront/internal/interfaces/web"
)

// Notices shown on the contact page when a submission is refused
const (
	ContactLimitNotice  = "You have sent several messages recently. Please try again later."
	ContactFailedNotice = "We could not send your message right now. Please try again later."
)

// PageHandler renders the storefront's HTML pages
type PageHandler struct {
	nav     *storefront.Navigation
	pages   *storefront.PageService
	shop    *storefront.ShopService
	contact *contactapp.Service
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(nav *storefront.Navigation, pages *storefront.PageService, shop *storefront.ShopService, contact *contactapp.Service) *PageHandler {
	return &PageHandler{
		nav:     nav,
		pages:   pages,
		shop:    shop,
		contact: contact,
	}
}

func (h *PageHandler) render(c *gin.Context, status int, name, title string, page any) {
	c.HTML(status, name, web.View{
		Title:       title,
		Description: storefront.BrandTagline,
		Layout:      h.nav.Layout(h.nav.Relative(c.Request.URL.Path), c.Query("menu") == "open"),
		Page:        page,
	})
}

// RenderError renders the generic error page
func (h *PageHandler) RenderError(c *gin.Context, status int) {
	page := web.ErrorPage{Status: status, Title: "Something went wrong", Message: "We could not prepare this page. Please try again in a moment."}
	switch status {
	case http.StatusNotFound:
		page.Title = "Page not found"
		page.Message = "The page you are looking for has drifted away."
	case http.StatusBadGateway:
		page.Message = "Our shop is briefly unavailable. Please try again in a moment."
	}
	h.render(c, status, web.TemplateError, page.Title, page)
}

// RenderPanic is the recovery handler for panics raised while serving a page
func (h *PageHandler) RenderPanic(c *gin.Context, _ any) {
	h.RenderError(c, http.StatusInternalServerError)
}

// Home renders the landing page. ?testimonial selects the carousel slide.
func (h *PageHandler) Home(c *gin.Context) {
	idx, _ := strconv.Atoi(c.Query("testimonial"))
	h.render(c, http.StatusOK, web.TemplateHome, "", h.pages.Home(c.Request.Context(), idx))
}

// About renders the brand story
func (h *PageHandler) About(c *gin.Context) {
	h.render(c, http.StatusOK, web.TemplateAbout, "Our Story", h.pages.About(c.Request.Context()))
}

// Journal renders the article listing
func (h *PageHandler) Journal(c *gin.Context) {
	h.render(c, http.StatusOK, web.TemplateJournal, "The Journal", h.pages.Journal(c.Request.Context()))
}

// Article renders a journal article. Only a missing article is a 404; other
// failures render the placeholder.
func (h *PageHandler) Article(c *gin.Context) {
	page, err := h.pages.Article(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RenderError(c, http.StatusNotFound)
		return
	}
	title := "The Journal"
	if page.Article != nil {
		title = page.Article.Title
	}
	h.render(c, http.StatusOK, web.TemplateArticle, title, page)
}

// ContactForm renders the empty contact form
func (h *PageHandler) ContactForm(c *gin.Context) {
	h.render(c, http.StatusOK, web.TemplateContact, "Contact", contactapp.FormState{})
}

// SubmitContact handles the posted contact form
func (h *PageHandler) SubmitContact(c *gin.Context) {
	var req contactapp.SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		form := contactapp.FormState{Values: req, Errors: middleware.FieldErrors(err)}
		if form.Errors == nil {
			form.Notice = ContactFailedNotice
		}
		h.render(c, http.StatusBadRequest, web.TemplateContact, "Contact", form)
		return
	}

	if _, err := h.contact.Submit(c.Request.Context(), req, c.ClientIP()); err != nil {
		status, _, message := errorStatus(err)
		form := contactapp.FormState{Values: req, Notice: ContactFailedNotice}
		switch {
		case errors.Is(err, shared.ErrTooManyRequests):
			form.Notice = ContactLimitNotice
		case status == http.StatusBadRequest:
			form.Notice = message
		}
		h.render(c, status, web.TemplateContact, "Contact", form)
		return
	}

	h.render(c, http.StatusOK, web.TemplateContact, "Contact", contactapp.Accepted())
}

// StoreRedirect forwards /store to the default collection
func (h *PageHandler) StoreRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, h.nav.Path(h.shop.StoreRedirect()))
}

// Store renders a commerce collection
func (h *PageHandler) Store(c *gin.Context) {
	page, err := h.shop.Store(c.Request.Context(), c.Param("categorySlug"))
	if err != nil {
		h.loaderError(c, err)
		return
	}
	h.render(c, http.StatusOK, web.TemplateStore, page.Collection.Name, page)
}

// Product renders a product detail page
func (h *PageHandler) Product(c *gin.Context) {
	page, err := h.shop.Product(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.loaderError(c, err)
		return
	}
	h.render(c, http.StatusOK, web.TemplateProduct, page.Product.Name, page)
}

// Cart hosts the commerce cart widget
func (h *PageHandler) Cart(c *gin.Context) {
	h.render(c, http.StatusOK, web.TemplateCart, "Cart", h.shop.Cart(c.Request.Context()))
}

func (h *PageHandler) loaderError(c *gin.Context, err error) {
	if commerce.IsNotFound(err) || errors.Is(err, content.ErrNotFound) {
		h.RenderError(c, http.StatusNotFound)
		return
	}
	h.RenderError(c, http.StatusBadGateway)
}
