package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/middleware"
	"ops-admin-backend/internal/features/auth"
	tokenservice "ops-admin-backend/internal/features/token/service"
	userhttp "ops-admin-backend/internal/features/user/delivery/http"
	"ops-admin-backend/internal/features/user/models"
	"ops-admin-backend/internal/features/user/service"
	"ops-admin-backend/internal/testutil"
)

type fixture struct {
	router *gin.Engine
	tokens *testutil.TokenRepository
	users  *testutil.UserRepository
}

func setup(t *testing.T, adminIDs ...string) *fixture {
	t.Helper()
	r, api := testutil.NewRouter(t)

	users := testutil.NewUserRepository(testutil.ActiveUser("u1", "alice"), testutil.ActiveUser("u2", "bob"))
	tokens := testutil.NewTokenRepository(
		testutil.ActiveToken("alice-token", "u1"),
		testutil.ActiveToken("alice-token-2", "u1"),
		testutil.ActiveToken("bob-token", "u2"),
	)
	authorizer := auth.NewAuthorizer(adminIDs)
	tokenSvc := tokenservice.NewTokenService(tokens, users, authorizer)
	userSvc := service.NewUserService(users, tokenSvc, authorizer)

	telegramAuth := middleware.TelegramInitData(testutil.TestBotToken, time.Hour)
	userhttp.NewUserHandler(userSvc).RegisterRoutes(api, middleware.RequireAuth(auth.NewAuthenticator(tokenSvc)), telegramAuth)
	return &fixture{router: r, tokens: tokens, users: users}
}

func registration(handler string) map[string]interface{} {
	return map[string]interface{}{
		"app_id":          "app-1",
		"from_channel":    "web",
		"register_method": "email",
		"first_name":      "Carol",
		"handler":         handler,
	}
}

func TestRegister(t *testing.T) {
	f := setup(t)

	w := testutil.Do(t, f.router, testutil.Request{Method: http.MethodPost, Path: "/api/user", Body: registration("carol")})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	env := testutil.Envelope(t, w, &user)
	assert.True(t, env.Success)
	assert.Equal(t, "carol", user.Handler)
	assert.Equal(t, models.StatusActive, user.Status)
	assert.NotEmpty(t, user.ID)
}

func TestRegister_DuplicateHandlerIsConflict(t *testing.T) {
	f := setup(t)

	w := testutil.Do(t, f.router, testutil.Request{Method: http.MethodPost, Path: "/api/user", Body: registration("carol")})
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutil.Do(t, f.router, testutil.Request{Method: http.MethodPost, Path: "/api/user", Body: registration("carol")})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, testutil.Envelope(t, w, nil).Success)
}

func TestRegister_Validation(t *testing.T) {
	f := setup(t)

	missing := registration("dave")
	delete(missing, "first_name")
	unknown := registration("erin")
	unknown["role"] = "admin"

	for name, body := range map[string]interface{}{"missing field": missing, "unknown field": unknown, "malformed": "{"} {
		t.Run(name, func(t *testing.T) {
			w := testutil.Do(t, f.router, testutil.Request{Method: http.MethodPost, Path: "/api/user", Body: body})
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetMe(t *testing.T) {
	f := setup(t)

	w := testutil.Do(t, f.router, testutil.Request{Method: http.MethodGet, Path: "/api/user"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.Do(t, f.router, testutil.Request{Method: http.MethodGet, Path: "/api/user", Token: "alice-token"})
	require.Equal(t, http.StatusOK, w.Code)
	var user models.User
	testutil.Envelope(t, w, &user)
	assert.Equal(t, "u1", user.ID)
}

func TestUpdate(t *testing.T) {
	f := setup(t)

	w := testutil.Do(t, f.router, testutil.Request{
		Method: http.MethodPut, Path: "/api/user", Token: "alice-token",
		Body: map[string]interface{}{"nick_name": "ally"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user models.User
	testutil.Envelope(t, w, &user)
	assert.Equal(t, "ally", *user.NickName)
	assert.Equal(t, "alice", user.Handler)

	w = testutil.Do(t, f.router, testutil.Request{
		Method: http.MethodPut, Path: "/api/user", Token: "alice-token",
		Body: map[string]interface{}{"id": "u2", "nick_name": "hijack"},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.Do(t, f.router, testutil.Request{
		Method: http.MethodPut, Path: "/api/user", Token: "alice-token",
		Body: map[string]interface{}{"handler": "bob"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDelete_RevokesTokens(t *testing.T) {
	f := setup(t)

	w := testutil.Do(t, f.router, testutil.Request{Method: http.MethodDelete, Path: "/api/user?id=u2", Token: "alice-token"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.Do(t, f.router, testutil.Request{Method: http.MethodDelete, Path: "/api/user", Token: "alice-token"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "COMMON_STATUS_INACTIVE", f.tokens.Status("alice-token"))
	assert.Equal(t, "COMMON_STATUS_INACTIVE", f.tokens.Status("alice-token-2"))
	assert.Equal(t, "COMMON_STATUS_ACTIVE", f.tokens.Status("bob-token"))

	w = testutil.Do(t, f.router, testutil.Request{Method: http.MethodGet, Path: "/api/user", Token: "alice-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.Do(t, f.router, testutil.Request{Method: http.MethodPost, Path: "/api/user", Body: registration("alice")})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDelete_RetryAfterRevokeFailure(t *testing.T) {
	f := setup(t)
	f.tokens.FailRevokeAll = 1

	w := testutil.Do(t, f.router, testutil.Request{Method: http.MethodDelete, Path: "/api/user?id=u1", Token: "alice-token"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	u, err := f.users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, u.Status)
	assert.Equal(t, "COMMON_STATUS_ACTIVE", f.tokens.Status("alice-token"))

	w = testutil.Do(t, f.router, testutil.Request{Method: http.MethodDelete, Path: "/api/user?id=u1", Token: "alice-token"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	u, err = f.users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, u.Status)
	assert.Equal(t, "COMMON_STATUS_INACTIVE", f.tokens.Status("alice-token"))
	assert.Equal(t, "COMMON_STATUS_INACTIVE", f.tokens.Status("alice-token-2"))
}

func TestDelete_AlreadyDeletedStillRevokes(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.users.MarkDeleted(context.Background(), "u1"))

	svc := service.NewUserService(f.users, tokenservice.NewTokenService(f.tokens, f.users, auth.NewAuthorizer(nil)), auth.NewAuthorizer(nil))
	err := svc.Delete(context.Background(), &auth.Identity{UserID: "u1"}, "u1")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	assert.Equal(t, "COMMON_STATUS_INACTIVE", f.tokens.Status("alice-token"))
	assert.Equal(t, "COMMON_STATUS_INACTIVE", f.tokens.Status("alice-token-2"))
}

func TestVerificationFlagsRequireAdmin(t *testing.T) {
	f := setup(t, "u2")

	for _, field := range []string{"is_certified_account", "humanVerify"} {
		w := testutil.Do(t, f.router, testutil.Request{
			Method: http.MethodPut, Path: "/api/user", Token: "alice-token",
			Body: map[string]interface{}{field: true},
		})
		assert.Equal(t, http.StatusForbidden, w.Code, field)
	}

	u, err := f.users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, u.IsCertifiedAccount)
	assert.False(t, u.HumanVerify)

	w := testutil.Do(t, f.router, testutil.Request{
		Method: http.MethodPut, Path: "/api/user", Token: "bob-token",
		Body: map[string]interface{}{"is_certified_account": true},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user models.User
	testutil.Envelope(t, w, &user)
	assert.True(t, user.IsCertifiedAccount)

	body := registration("carol")
	body["humanVerify"] = true
	w = testutil.Do(t, f.router, testutil.Request{Method: http.MethodPost, Path: "/api/user", Body: body})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLinkTelegram(t *testing.T) {
	f := setup(t)

	link := func(token, initData string) *httptest.ResponseRecorder {
		return testutil.Do(t, f.router, testutil.Request{
			Method: http.MethodPost,
			Path:   "/api/user/telegram",
			Token:  token,
			Header: map[string]string{middleware.HeaderInitData: initData},
		})
	}

	w := link("", testutil.SignedInitData(t, 42, "alice"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = link("alice-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = link("alice-token", testutil.SignedInitData(t, 42, "alice"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user models.User
	testutil.Envelope(t, w, &user)
	require.NotNil(t, user.TelegramID)
	assert.Equal(t, int64(42), *user.TelegramID)

	w = link("bob-token", testutil.SignedInitData(t, 42, "bob"))
	assert.Equal(t, http.StatusConflict, w.Code)
}
