// Package membership attaches an opaque visitor session to every request.
// Pages never inspect the session; it exists for the external membership
// provider and for log correlation.
package membership

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNoSession is returned when a request carries no usable session
var ErrNoSession = errors.New("membership: no session")

// Session is an opaque visitor session
type Session struct {
	ID       string
	IssuedAt time.Time
	// New is true when the session was created for this request
	New bool
}

// Provider resolves and issues sessions
type Provider interface {
	// Resolve returns the session carried by r, or ErrNoSession
	Resolve(r *http.Request) (*Session, error)
	// Issue creates a new session and writes it to w
	Issue(w http.ResponseWriter) *Session
}

type sessionKey struct{}

// WithSession stores s in ctx
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored in ctx, or nil
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// CookieConfig configures the cookie provider
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
	Path   string
	// Secret signs the cookie as an HS256 token. Empty stores the bare session ID.
	Secret string
	Issuer string
}

// sessionClaims is the payload of a signed session cookie
type sessionClaims struct {
	jwt.RegisteredClaims
}

// CookieProvider keeps the session ID in an HttpOnly cookie
type CookieProvider struct {
	cfg CookieConfig
	now func() time.Time
}

// NewCookieProvider creates a cookie-backed provider
func NewCookieProvider(cfg CookieConfig) *CookieProvider {
	if cfg.Name == "" {
		cfg.Name = "saanjh_session"
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "saanjh-storefront"
	}
	return &CookieProvider{cfg: cfg, now: time.Now}
}

// Resolve reads the session cookie. Values that are not UUIDs, and signed
// cookies that fail verification, are rejected.
func (p *CookieProvider) Resolve(r *http.Request) (*Session, error) {
	c, err := r.Cookie(p.cfg.Name)
	if err != nil {
		return nil, ErrNoSession
	}
	if p.cfg.Secret == "" {
		id, err := uuid.Parse(c.Value)
		if err != nil {
			return nil, ErrNoSession
		}
		return &Session{ID: id.String()}, nil
	}
	return p.verify(c.Value)
}

// Issue sets a fresh session cookie
func (p *CookieProvider) Issue(w http.ResponseWriter) *Session {
	s := &Session{ID: uuid.NewString(), IssuedAt: p.now().UTC(), New: true}
	value := s.ID
	if p.cfg.Secret != "" {
		signed, err := p.sign(s)
		if err != nil {
			// The session still applies to this request; the next one gets a new cookie.
			return s
		}
		value = signed
	}
	http.SetCookie(w, &http.Cookie{
		Name:     p.cfg.Name,
		Value:    value,
		Path:     p.cfg.Path,
		MaxAge:   int(p.cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   p.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func (p *CookieProvider) sign(s *Session) (string, error) {
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       s.ID,
			Issuer:   p.cfg.Issuer,
			Subject:  s.ID,
			IssuedAt: jwt.NewNumericDate(s.IssuedAt),
		},
	}
	if p.cfg.MaxAge > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(s.IssuedAt.Add(p.cfg.MaxAge))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.cfg.Secret))
}

func (p *CookieProvider) verify(value string) (*Session, error) {
	token, err := jwt.ParseWithClaims(value, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrNoSession
		}
		return []byte(p.cfg.Secret), nil
	},
		jwt.WithIssuer(p.cfg.Issuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok {
		return nil, ErrNoSession
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrNoSession
	}
	s := &Session{ID: id.String()}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return s, nil
}

var _ Provider = (*CookieProvider)(nil)
