package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"ops-admin-backend/internal/common/middleware"
	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/common/validation"
)

// NewRouter returns a gin engine in test mode with the production middleware chain that
// matters to handlers. Routes are mounted under the returned /api group.
func NewRouter(t *testing.T) (*gin.Engine, *gin.RouterGroup) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler(false), middleware.Recovery())
	return r, r.Group("/api")
}

// Request is one test HTTP call.
type Request struct {
	Method string
	Path   string
	Body   interface{}
	Token  string
	Header map[string]string
}

// Do performs req against handler and returns the recorder.
func Do(t *testing.T, handler http.Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	switch b := req.Body.(type) {
	case nil:
	case string:
		body.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&body).Encode(b))
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, &body)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httpReq)
	return w
}

// Envelope decodes a response envelope, unmarshalling data into dest when non-nil.
func Envelope(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) response.Envelope {
	t.Helper()

	var raw struct {
		response.Envelope
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	if dest != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	env := raw.Envelope
	env.Data = raw.Data
	return env
}

func StrPtr(s string) *string {
	return &s
}
