package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/auth"
	"ops-admin-backend/internal/features/token/models"
)

type staticValidator map[string]*models.Token

func (s staticValidator) Validate(_ context.Context, value string) (*models.Token, error) {
	if tok, ok := s[value]; ok && tok.IsActive() {
		return tok, nil
	}
	return nil, apperrors.ErrInvalidToken
}

func newRouter(production bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(production), Recovery())
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestErrorHandler_MapsAppErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.NewValidationError("name", "is required"), http.StatusBadRequest},
		{"missing token", apperrors.ErrMissingToken, http.StatusUnauthorized},
		{"forbidden", apperrors.NewForbiddenError("not yours"), http.StatusForbidden},
		{"not found", apperrors.NewNotFoundError("promotion", "p1"), http.StatusNotFound},
		{"conflict", apperrors.NewConflictError("user", "handler taken"), http.StatusConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(false)
			r.GET("/", func(c *gin.Context) { _ = c.Error(tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tc.status, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Message)
			assert.NotNil(t, env.Error)
		})
	}
}

func TestErrorHandler_ProductionHidesDetail(t *testing.T) {
	r := newRouter(true)
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(apperrors.NewDatabaseError("select users", errors.New("connection refused")))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Internal server error", env.Message)
	assert.Nil(t, env.Error)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestRecovery(t *testing.T) {
	r := newRouter(false)
	r.GET("/", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestRequestID_Propagates(t *testing.T) {
	r := newRouter(false)
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "req-1", w.Body.String())
}

func authRouter(admins []string) *gin.Engine {
	validator := staticValidator{
		"alice-token": {Token: "alice-token", UserID: "alice", Status: models.StatusActive},
		"root-token":  {Token: "root-token", UserID: "root", Status: models.StatusActive},
		"dead-token":  {Token: "dead-token", UserID: "alice", Status: models.StatusInactive},
	}
	authenticator := auth.NewAuthenticator(validator)
	authorizer := auth.NewAuthorizer(admins)

	r := newRouter(false)
	r.GET("/me", RequireAuth(authenticator), func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)
		c.String(http.StatusOK, identity.UserID)
	})
	r.GET("/admin", RequireAuth(authenticator), RequireAdmin(authorizer), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	r := authRouter(nil)

	cases := []struct {
		name   string
		header string
		value  string
		status int
	}{
		{"no token", "", "", http.StatusUnauthorized},
		{"unknown token", "Authorization", "Bearer nope", http.StatusUnauthorized},
		{"revoked token", "token", "dead-token", http.StatusUnauthorized},
		{"bearer", "Authorization", "Bearer alice-token", http.StatusOK},
		{"token header", "token", "alice-token", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "alice", w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	r := authRouter([]string{"root"})

	call := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, call("root-token"))
	assert.Equal(t, http.StatusForbidden, call("alice-token"))
	assert.Equal(t, http.StatusUnauthorized, call("nope"))
}
