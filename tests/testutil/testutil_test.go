package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saanjh/storefront/internal/interfaces/http/dto"
)

func TestMockDB(t *testing.T) {
	db := NewMockDB(t)

	db.Mock.ExpectExec(`DELETE FROM "contact_messages"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, db.DB.Exec(`DELETE FROM "contact_messages"`).Error)

	db.Mock.ExpectPing()
	require.NoError(t, db.SqlDB.Ping())

	db.ExpectationsWereMet(t)
}

func TestTestContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/shop/contact", strings.NewReader("name=Asha"))
	tc := NewTestContextWithRequest(t, req)
	tc.SetRequestID("req-123")

	assert.Equal(t, "/shop/contact", tc.Context.Request.URL.Path)
	assert.Equal(t, "req-123", tc.Context.GetString("request_id"))
	assert.Equal(t, http.MethodGet, NewTestContext(t).Context.Request.Method)
}

func TestAssertEventually(t *testing.T) {
	done := make(chan struct{})
	go func() {
		time.Sleep(30 * time.Millisecond)
		close(done)
	}()

	AssertEventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 500*time.Millisecond, 10*time.Millisecond)
}

func TestAssertNever(t *testing.T) {
	AssertNever(t, func() bool { return false }, 50*time.Millisecond, 10*time.Millisecond)
}

func TestRunAPICases(t *testing.T) {
	handler := func(c *gin.Context) {
		if c.Request.Method == http.MethodPost {
			body, _ := io.ReadAll(c.Request.Body)
			c.JSON(http.StatusCreated, dto.NewSuccessResponse(map[string]string{
				"echo":        string(body),
				"contentType": c.GetHeader("Content-Type"),
			}))
			return
		}
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("NOT_FOUND", "missing"))
	}

	RunAPICases(t, handler, []APICase{
		{Name: "error envelope", WantStatus: http.StatusNotFound, WantCode: dto.ErrCodeNotFound},
		{
			Name:       "json body",
			Method:     http.MethodPost,
			Body:       map[string]string{"name": "Asha"},
			WantStatus: http.StatusCreated,
			Check: func(t *testing.T, resp dto.Response) {
				data := DataAs[map[string]string](t, resp)
				assert.JSONEq(t, `{"name":"Asha"}`, data["echo"])
				assert.Equal(t, "application/json", data["contentType"])
			},
		},
	})
}

func TestPerformRequest(t *testing.T) {
	engine := gin.New()
	engine.GET("/shop/journal", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetHeader("Accept"))
	})

	w := PerformRequest(engine, http.MethodGet, "/shop/journal", nil, map[string]string{"Accept": "text/html"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html", w.Body.String())
}
