package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saanjh/storefront/internal/application/backfill"
	contactapp "github.com/saanjh/storefront/internal/application/contact"
	"github.com/saanjh/storefront/internal/application/storefront"
	"github.com/saanjh/storefront/internal/domain/tasting"
	"github.com/saanjh/storefront/internal/interfaces/http/middleware"
)

const (
	defaultFailureLimit = 20
	maxFailureLimit     = 100
)

// StorefrontHandler serves the page models as JSON for headless clients
type StorefrontHandler struct {
	BaseHandler
	pages *storefront.PageService
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(pages *storefront.PageService) *StorefrontHandler {
	return &StorefrontHandler{pages: pages}
}

// Home returns the landing page model
func (h *StorefrontHandler) Home(c *gin.Context) {
	idx, _ := strconv.Atoi(c.Query("testimonial"))
	h.Success(c, h.pages.Home(c.Request.Context(), idx))
}

// About returns the brand story
func (h *StorefrontHandler) About(c *gin.Context) {
	h.Success(c, h.pages.About(c.Request.Context()))
}

// Journal returns the article listing
func (h *StorefrontHandler) Journal(c *gin.Context) {
	h.Success(c, h.pages.Journal(c.Request.Context()))
}

// Article returns one article, or ERR_NOT_FOUND when it does not exist
func (h *StorefrontHandler) Article(c *gin.Context) {
	page, err := h.pages.Article(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// ContactHandler accepts contact messages over JSON
type ContactHandler struct {
	BaseHandler
	service *contactapp.Service
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(service *contactapp.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit validates and stores a contact message
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactapp.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := middleware.ValidationDetails(err); len(details) > 0 {
			h.ValidationError(c, details)
			return
		}
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// BackfillHandler exposes the tasting-note backfill failure log
type BackfillHandler struct {
	BaseHandler
	queue *backfill.Queue
}

// NewBackfillHandler creates a new BackfillHandler
func NewBackfillHandler(queue *backfill.Queue) *BackfillHandler {
	return &BackfillHandler{queue: queue}
}

// Failures lists the most recent failed write-backs, newest first.
// ?limit is clamped to 1..100.
func (h *BackfillHandler) Failures(c *gin.Context) {
	limit := defaultFailureLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = min(n, maxFailureLimit)
	}

	failures, total, err := h.queue.Failures(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if failures == nil {
		failures = []tasting.Failure{}
	}
	h.SuccessWithMeta(c, failures, total, limit)
}

// Stats reports queue counters
func (h *BackfillHandler) Stats(c *gin.Context) {
	h.Success(c, h.queue.Stats())
}
