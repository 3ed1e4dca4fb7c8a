package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saanjh/storefront/internal/application/storefront"
	"github.com/saanjh/storefront/internal/infrastructure/logger"
	"github.com/saanjh/storefront/internal/interfaces/http/dto"
	"github.com/saanjh/storefront/internal/interfaces/http/middleware"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration under the configured base path
type Router struct {
	engine     *gin.Engine
	basePath   string
	apiVersion string
	pages      []RouteRegistrar
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithBasePath mounts every page and API route below p
func WithBasePath(p string) RouterOption {
	return func(r *Router) {
		r.basePath = strings.TrimRight(p, "/")
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		pages:      make([]RouteRegistrar, 0),
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds an API RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterPages adds a RouteRegistrar mounted directly at the base path
func (r *Router) RegisterPages(registrar RouteRegistrar) *Router {
	r.pages = append(r.pages, registrar)
	return r
}

// BasePath returns the mount point, without a trailing slash
func (r *Router) BasePath() string {
	return r.basePath
}

// APIPrefix returns the path prefix of the versioned API
func (r *Router) APIPrefix() string {
	return storefront.JoinPath(r.basePath, "/api/"+r.apiVersion)
}

// Setup registers all routes with the engine. Unmatched API paths answer
// with a JSON 404; every other unmatched path redirects home.
func (r *Router) Setup() {
	base := r.engine.Group(r.basePath)
	for _, registrar := range r.pages {
		registrar.RegisterRoutes(base)
	}

	api := base.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	r.engine.NoRoute(r.noRoute)
}

func (r *Router) isAPI(c *gin.Context) bool {
	p := c.Request.URL.Path
	prefix := r.APIPrefix()
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func (r *Router) noRoute(c *gin.Context) {
	if r.isAPI(c) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
		return
	}
	c.Redirect(http.StatusFound, storefront.JoinPath(r.basePath, "/"))
}

// PanicHandler answers API requests with a JSON 500 and hands page requests to pages
func (r *Router) PanicHandler(pages logger.PanicHandler) logger.PanicHandler {
	return func(c *gin.Context, recovered any) {
		if pages == nil || r.isAPI(c) {
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal, "An unexpected error occurred", middleware.GetRequestID(c)))
			return
		}
		pages(c, recovered)
	}
}

// DomainGroup creates a route group for a specific domain
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{
		name:       name,
		prefix:     prefix,
		routes:     make([]routeDefinition, 0),
		subgroups:  make([]*DomainGroup, 0),
		middleware: make([]gin.HandlerFunc, 0),
	}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{
		method:   method,
		path:     path,
		handlers: handlers,
	})
	return dg
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)

	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}

	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}

	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
