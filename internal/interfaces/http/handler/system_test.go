package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saanjh/storefront/tests/testutil"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping() error { return p.err }

type stubRunState bool

func (s stubRunState) IsRunning() bool { return bool(s) }

func TestNewSystemHandler(t *testing.T) {
	h := NewSystemHandler("Saanjh Rituals", "1.2.0")
	assert.NotNil(t, h)
	assert.False(t, h.startTime.IsZero())
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler("Saanjh Rituals", "1.2.0")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/system/info", nil)

	h.GetSystemInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := testutil.DecodeResponse(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "Saanjh Rituals", data["name"])
	assert.Equal(t, "1.2.0", data["version"])
	assert.NotEmpty(t, data["go_version"])
	assert.NotEmpty(t, data["uptime"])
}

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler("Saanjh Rituals", "1.2.0")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/system/ping", nil)

	h.Ping(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := testutil.DecodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "pong", data["message"])

	_, err := time.Parse(time.RFC3339, data["timestamp"].(string))
	assert.NoError(t, err)
}

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		opts       []SystemOption
		wantStatus int
		wantChecks map[string]string
	}{
		{
			name:       "no dependencies",
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"backfill": "disabled"},
		},
		{
			name:       "healthy database and running queue",
			opts:       []SystemOption{WithDatabase(stubPinger{}), WithBackfill(stubRunState(true))},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"database": "ok", "backfill": "running"},
		},
		{
			name:       "stopped queue is still healthy",
			opts:       []SystemOption{WithBackfill(stubRunState(false))},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"backfill": "stopped"},
		},
		{
			name:       "database down",
			opts:       []SystemOption{WithDatabase(stubPinger{err: errors.New("connection refused")})},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"database": "connection refused", "backfill": "disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler("Saanjh Rituals", "1.2.0", tt.opts...)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/health", nil)

			h.Health(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantChecks, resp.Checks)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "ok", resp.Status)
			} else {
				assert.Equal(t, "unhealthy", resp.Status)
			}
		})
	}
}
