package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saanjh/storefront/internal/interfaces/http/dto"
)

// APICase is one request served directly to a JSON API handler.
// An empty WantCode expects a success envelope.
type APICase struct {
	Name       string
	Method     string
	Target     string
	Body       any
	Prepare    func(tc *TestContext)
	WantStatus int
	WantCode   string
	Check      func(t *testing.T, resp dto.Response)
}

// RunAPICases serves each case to handler as a subtest
func RunAPICases(t *testing.T, handler gin.HandlerFunc, cases []APICase) {
	t.Helper()
	for _, ac := range cases {
		t.Run(ac.Name, func(t *testing.T) {
			method := ac.Method
			if method == "" {
				method = http.MethodGet
			}
			target := ac.Target
			if target == "" {
				target = "/"
			}

			var body io.Reader
			if ac.Body != nil {
				body = ToJSONReader(t, ac.Body)
			}
			req := httptest.NewRequest(method, target, body)
			if ac.Body != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			tc := NewTestContextWithRequest(t, req)
			if ac.Prepare != nil {
				ac.Prepare(tc)
			}
			handler(tc.Context)

			if ac.WantStatus != 0 {
				assert.Equal(t, ac.WantStatus, tc.Recorder.Code)
			}
			resp := DecodeResponse(t, tc.Recorder)
			if ac.WantCode == "" {
				assert.True(t, resp.Success, "expected a success envelope")
			} else {
				require.NotNil(t, resp.Error, "expected an error envelope")
				assert.Equal(t, ac.WantCode, resp.Error.Code)
			}
			if ac.Check != nil {
				ac.Check(t, resp)
			}
		})
	}
}

// DecodeResponse parses the standard API envelope
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Failed to parse API response")
	return resp
}

// DataAs converts the envelope's data into T
func DataAs[T any](t *testing.T, resp dto.Response) T {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), "Failed to convert response data")
	return out
}

// ToJSONReader encodes v as a JSON request body
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}

// PerformRequest serves one request against handler and returns the recorder
func PerformRequest(handler http.Handler, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}
