package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-admin-backend/internal/common/middleware"
	"ops-admin-backend/internal/features/auth"
	tokenhttp "ops-admin-backend/internal/features/token/delivery/http"
	"ops-admin-backend/internal/features/token/models"
	"ops-admin-backend/internal/features/token/service"
	"ops-admin-backend/internal/testutil"
)

func setup(t *testing.T) (*gin.Engine, *testutil.TokenRepository) {
	t.Helper()
	r, api := testutil.NewRouter(t)

	tokens := testutil.NewTokenRepository()
	users := testutil.NewUserRepository(testutil.ActiveUser("u1", "alice"), testutil.ActiveUser("u2", "bob"))
	svc := service.NewTokenService(tokens, users, auth.NewAuthorizer(nil))

	tokenhttp.NewTokenHandler(svc).RegisterRoutes(api, middleware.RequireAuth(auth.NewAuthenticator(svc)), nil)
	return r, tokens
}

func issue(t *testing.T, r http.Handler, userID string) models.TokenResponse {
	t.Helper()
	w := testutil.Do(t, r, testutil.Request{Method: http.MethodPost, Path: "/api/token", Body: map[string]string{"user_id": userID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tok models.TokenResponse
	env := testutil.Envelope(t, w, &tok)
	require.True(t, env.Success)
	return tok
}

func TestIssue(t *testing.T) {
	r, _ := setup(t)

	tok := issue(t, r, "u1")
	assert.Equal(t, "u1", tok.UserID)
	assert.Equal(t, models.StatusActive, tok.Status)

	w := testutil.Do(t, r, testutil.Request{Method: http.MethodPost, Path: "/api/token", Body: map[string]string{"user_id": "ghost"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.Do(t, r, testutil.Request{Method: http.MethodPost, Path: "/api/token", Body: map[string]string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, testutil.Envelope(t, w, nil).Success)
}

func TestVerify(t *testing.T) {
	r, _ := setup(t)
	tok := issue(t, r, "u1")

	w := testutil.Do(t, r, testutil.Request{Method: http.MethodPut, Path: "/api/token", Body: map[string]string{"token": tok.Token}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.VerifyResponse
	testutil.Envelope(t, w, &resp)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Handler)

	w = testutil.Do(t, r, testutil.Request{Method: http.MethodPut, Path: "/api/token", Body: map[string]string{"token": "bogus"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestList_RequiresAuthAndOwnership(t *testing.T) {
	r, _ := setup(t)
	tok := issue(t, r, "u1")
	issue(t, r, "u1")

	w := testutil.Do(t, r, testutil.Request{Method: http.MethodGet, Path: "/api/token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.Do(t, r, testutil.Request{Method: http.MethodGet, Path: "/api/token", Token: tok.Token})
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.TokenResponse
	testutil.Envelope(t, w, &list)
	assert.Len(t, list, 2)

	w = testutil.Do(t, r, testutil.Request{Method: http.MethodGet, Path: "/api/token?user_id=u2", Token: tok.Token})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRevoke(t *testing.T) {
	r, tokens := setup(t)
	alice := issue(t, r, "u1")
	victim := issue(t, r, "u1")
	bob := issue(t, r, "u2")

	w := testutil.Do(t, r, testutil.Request{Method: http.MethodDelete, Path: "/api/token?token=" + victim.Token, Token: bob.Token})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.Do(t, r, testutil.Request{Method: http.MethodDelete, Path: "/api/token?token=" + victim.Token, Token: alice.Token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusInactive, tokens.Status(victim.Token))

	w = testutil.Do(t, r, testutil.Request{Method: http.MethodDelete, Path: "/api/token?token=" + victim.Token, Token: alice.Token})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.Do(t, r, testutil.Request{Method: http.MethodDelete, Path: "/api/token", Token: alice.Token})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRevokedTokenNoLongerAuthenticates(t *testing.T) {
	r, _ := setup(t)
	tok := issue(t, r, "u1")

	w := testutil.Do(t, r, testutil.Request{Method: http.MethodDelete, Path: "/api/token?token=" + tok.Token, Token: tok.Token})
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, r, testutil.Request{Method: http.MethodGet, Path: "/api/token", Token: tok.Token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTelegramRouteAbsentWithoutBotToken(t *testing.T) {
	r, _ := setup(t)

	w := testutil.Do(t, r, testutil.Request{Method: http.MethodPost, Path: "/api/token/telegram"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueForTelegram_LinkedAccountOnly(t *testing.T) {
	r, api := testutil.NewRouter(t)
	tokens := testutil.NewTokenRepository()
	users := testutil.NewUserRepository(
		testutil.TelegramUser("u1", "alice", 42),
		testutil.ActiveUser("u2", "mallory"),
	)
	svc := service.NewTokenService(tokens, users, auth.NewAuthorizer(nil))
	telegramAuth := middleware.TelegramInitData(testutil.TestBotToken, time.Hour)
	tokenhttp.NewTokenHandler(svc).RegisterRoutes(api, middleware.RequireAuth(auth.NewAuthenticator(svc)), telegramAuth)

	issueVia := func(initData string) int {
		w := testutil.Do(t, r, testutil.Request{
			Method: http.MethodPost,
			Path:   "/api/token/telegram",
			Header: map[string]string{middleware.HeaderInitData: initData},
		})
		return w.Code
	}

	assert.Equal(t, http.StatusOK, issueVia(testutil.SignedInitData(t, 42, "whatever")))

	// a Telegram account named after someone else's handler gets nothing
	assert.Equal(t, http.StatusNotFound, issueVia(testutil.SignedInitData(t, 99, "mallory")))
	list, err := tokens.ListActiveByUser(context.Background(), "u2")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.Equal(t, http.StatusUnauthorized, issueVia("user=%7B%22id%22%3A42%7D&auth_date=1&hash=bad"))
}
