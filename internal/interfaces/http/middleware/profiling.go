package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saanjh/storefront/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware
type ProfilingConfig struct {
	Enabled bool
	// BasePath is stripped from routes before the page label is derived
	BasePath  string
	SkipPaths []string
}

// ProfilingWithConfig runs each request under pprof labels for its method,
// matched route and page, so Pyroscope profiles can be sliced per page.
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		route := c.FullPath()
		labels := map[string]string{
			telemetry.ProfilingLabelMethod: c.Request.Method,
			telemetry.ProfilingLabelRoute:  route,
			telemetry.ProfilingLabelPage:   PageFromRoute(route, cfg.BasePath),
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// PageFromRoute returns the first static segment of route below basePath,
// skipping the api/v1 prefix. The root route is "home"; unmatched routes are "".
//
//	/shop/journal/:id      -> journal
//	/shop/api/v1/pages/home -> pages
func PageFromRoute(route, basePath string) string {
	if route == "" {
		return ""
	}
	route = strings.TrimPrefix(route, strings.TrimSuffix(basePath, "/"))
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) || strings.HasPrefix(part, ":") || strings.HasPrefix(part, "*") {
			continue
		}
		return part
	}
	return "home"
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || (segment[0] != 'v' && segment[0] != 'V') {
		return false
	}
	for i := 1; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return false
		}
	}
	return true
}
