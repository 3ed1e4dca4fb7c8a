package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saanjh/storefront/internal/interfaces/http/dto"
)

type contactForm struct {
	Email   string `json:"email" form:"email" binding:"required,email"`
	Message string `form:"message" binding:"required,max=10"`
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()

	r := gin.New()
	r.POST("/test", func(c *gin.Context) {
		var req contactForm
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("invalid input", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"email":"nope","Message":"far too long a message"}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(r, req)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 2)
		assert.Equal(t, "email", resp.Error.Details[0].Field)
		assert.Equal(t, "Invalid email format", resp.Error.Details[0].Message)
		assert.Equal(t, "message", resp.Error.Details[1].Field)
		assert.Equal(t, "Must be at most 10 characters", resp.Error.Details[1].Message)
	})

	t.Run("valid input", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"email":"a@b.co","Message":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	})
}

func TestFieldErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("plain")))
	assert.Nil(t, ValidationDetails(nil))
}
