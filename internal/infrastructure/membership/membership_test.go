package membership

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieProvider_IssueAndResolve(t *testing.T) {
	p := NewCookieProvider(CookieConfig{Name: "sid", MaxAge: time.Hour, Secure: true, Path: "/shop"})

	rec := httptest.NewRecorder()
	s := p.Issue(rec)
	assert.True(t, s.New)
	assert.NotEmpty(t, s.ID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "sid", c.Name)
	assert.Equal(t, s.ID, c.Value)
	assert.Equal(t, "/shop", c.Path)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	resolved, err := p.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, s.ID, resolved.ID)
	assert.False(t, resolved.New)
}

func TestCookieProvider_ResolveRejects(t *testing.T) {
	p := NewCookieProvider(CookieConfig{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := p.Resolve(req)
	assert.ErrorIs(t, err, ErrNoSession)

	req.AddCookie(&http.Cookie{Name: "saanjh_session", Value: "not-a-uuid"})
	_, err = p.Resolve(req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	s := &Session{ID: "abc"}
	ctx := WithSession(context.Background(), s)
	assert.Same(t, s, FromContext(ctx))
}

func TestCookieProvider_SignedSession(t *testing.T) {
	p := NewCookieProvider(CookieConfig{Name: "sid", MaxAge: time.Hour, Secret: "0123456789abcdef0123456789abcdef"})

	rec := httptest.NewRecorder()
	s := p.Issue(rec)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, s.ID, cookies[0].Value)
	assert.Equal(t, 3, len(strings.Split(cookies[0].Value, ".")))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	resolved, err := p.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, s.ID, resolved.ID)
	assert.Equal(t, s.IssuedAt.Unix(), resolved.IssuedAt.Unix())
}

func TestCookieProvider_SignedSessionRejects(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	p := NewCookieProvider(CookieConfig{Name: "sid", MaxAge: time.Hour, Secret: secret})

	t.Run("bare uuid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "7c9e6679-7425-40de-944b-e07fc1f90ae7"})
		_, err := p.Resolve(req)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewCookieProvider(CookieConfig{Name: "sid", MaxAge: time.Hour, Secret: "another-secret-another-secret-xx"})
		rec := httptest.NewRecorder()
		other.Issue(rec)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(rec.Result().Cookies()[0])
		_, err := p.Resolve(req)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("expired", func(t *testing.T) {
		issued := NewCookieProvider(CookieConfig{Name: "sid", MaxAge: time.Hour, Secret: secret})
		issued.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		rec := httptest.NewRecorder()
		issued.Issue(rec)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(rec.Result().Cookies()[0])
		_, err := p.Resolve(req)
		assert.ErrorIs(t, err, ErrNoSession)
	})
}
