package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saanjh/storefront/internal/infrastructure/logger"
	"github.com/saanjh/storefront/internal/infrastructure/membership"
)

// SessionKey is the gin context key holding the membership session
const SessionKey = "membership_session"

// MembershipConfig holds configuration for the membership middleware
type MembershipConfig struct {
	Provider membership.Provider
	// SkipPaths get no session, e.g. health checks
	SkipPaths []string
	Logger    *zap.Logger
}

// Membership attaches the visitor's session to every request, issuing one on
// first visit. Pages never inspect it; it is carried for the commerce widgets.
func Membership(cfg MembershipConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if cfg.Provider == nil {
			c.Next()
			return
		}
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		session, err := cfg.Provider.Resolve(c.Request)
		if err != nil {
			if !errors.Is(err, membership.ErrNoSession) {
				log.Debug("Discarding unreadable session", zap.Error(err))
			}
			session = cfg.Provider.Issue(c.Writer)
		}

		ctx := membership.WithSession(c.Request.Context(), session)
		ctx = logger.WithSessionID(ctx, session.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(SessionKey, session)
		c.Next()
	}
}

// GetSession returns the session attached by Membership
func GetSession(c *gin.Context) (*membership.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*membership.Session)
	return s, ok
}
