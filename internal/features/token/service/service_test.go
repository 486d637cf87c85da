package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/features/auth"
	"ops-admin-backend/internal/features/token/models"
	"ops-admin-backend/internal/features/token/repository"
	usermodels "ops-admin-backend/internal/features/user/models"
	"ops-admin-backend/internal/testutil"
)

func newService(users ...*usermodels.User) (TokenService, *testutil.TokenRepository) {
	tokens := testutil.NewTokenRepository()
	svc := NewTokenService(tokens, testutil.NewUserRepository(users...), auth.NewAuthorizer(nil))
	return svc, tokens
}

func identity(userID string) *auth.Identity {
	return &auth.Identity{UserID: userID}
}

func TestIssue_ThenValidate(t *testing.T) {
	svc, _ := newService(testutil.ActiveUser("u1", "alice"))
	ctx := context.Background()

	tok, err := svc.Issue(ctx, &models.IssueRequest{UserID: "u1", AppHandle: testutil.StrPtr("web")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, tok.Status)
	assert.NotEmpty(t, tok.Token)
	assert.Equal(t, "web", *tok.AppHandle)

	got, err := svc.Validate(ctx, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
}

func TestIssue_ValuesAreUnique(t *testing.T) {
	svc, _ := newService(testutil.ActiveUser("u1", "alice"))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tok, err := svc.Issue(context.Background(), &models.IssueRequest{UserID: "u1"})
		require.NoError(t, err)
		assert.False(t, seen[tok.Token])
		seen[tok.Token] = true
	}
}

func TestIssue_UnknownOrDeletedUser(t *testing.T) {
	deleted := testutil.ActiveUser("u2", "bob")
	deleted.Status = usermodels.StatusDeleted
	svc, _ := newService(deleted)

	for _, id := range []string{"nobody", "u2"} {
		_, err := svc.Issue(context.Background(), &models.IssueRequest{UserID: id})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeUserNotFound, appErr.Code)
	}
}

func TestIssueForTelegram(t *testing.T) {
	svc, _ := newService(testutil.TelegramUser("u1", "alice", 42))
	ctx := context.Background()

	tok, err := svc.IssueForTelegram(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "u1", tok.UserID)
	assert.Equal(t, AppHandleTelegram, *tok.AppHandle)
	assert.Equal(t, "42", *tok.OpenID)

	_, err = svc.IssueForTelegram(ctx, 43)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestIssueForTelegram_IgnoresMatchingHandler(t *testing.T) {
	// alice registered by email and never linked a Telegram account
	svc, tokens := newService(testutil.ActiveUser("u1", "alice"))

	_, err := svc.IssueForTelegram(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	list, err := tokens.ListActiveByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIssueForTelegram_DeletedUser(t *testing.T) {
	deleted := testutil.TelegramUser("u1", "alice", 42)
	deleted.Status = usermodels.StatusDeleted
	svc, _ := newService(deleted)

	_, err := svc.IssueForTelegram(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestValidate_UnknownToken(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Validate(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRevoke_TwiceIsNotFound(t *testing.T) {
	svc, tokens := newService(testutil.ActiveUser("u1", "alice"))
	ctx := context.Background()

	tok, err := svc.Issue(ctx, &models.IssueRequest{UserID: "u1"})
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, identity("u1"), tok.Token))
	assert.Equal(t, models.StatusInactive, tokens.Status(tok.Token))

	_, err = svc.Validate(ctx, tok.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	err = svc.Revoke(ctx, identity("u1"), tok.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestRevoke_OtherUsersToken(t *testing.T) {
	svc, tokens := newService(testutil.ActiveUser("u1", "alice"))
	ctx := context.Background()

	tok, err := svc.Issue(ctx, &models.IssueRequest{UserID: "u1"})
	require.NoError(t, err)

	err = svc.Revoke(ctx, identity("u2"), tok.Token)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeForbidden, appErr.Code)
	assert.Equal(t, models.StatusActive, tokens.Status(tok.Token))
}

func TestRevoke_ConcurrentCallsYieldOneSuccess(t *testing.T) {
	svc, _ := newService(testutil.ActiveUser("u1", "alice"))
	ctx := context.Background()

	tok, err := svc.Issue(ctx, &models.IssueRequest{UserID: "u1"})
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Revoke(ctx, identity("u1"), tok.Token)
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	}
	assert.Equal(t, 1, successes)
}

func TestListForUser(t *testing.T) {
	svc, _ := newService(testutil.ActiveUser("u1", "alice"))
	ctx := context.Background()

	a, _ := svc.Issue(ctx, &models.IssueRequest{UserID: "u1"})
	b, _ := svc.Issue(ctx, &models.IssueRequest{UserID: "u1"})
	require.NoError(t, svc.Revoke(ctx, identity("u1"), b.Token))

	tokens, err := svc.ListForUser(ctx, identity("u1"), "")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, a.Token, tokens[0].Token)

	_, err = svc.ListForUser(ctx, identity("u1"), "u2")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestVerifyWithProfile(t *testing.T) {
	user := testutil.ActiveUser("u1", "alice")
	user.Email = testutil.StrPtr("alice@example.com")
	svc, _ := newService(user)
	ctx := context.Background()

	tok, err := svc.Issue(ctx, &models.IssueRequest{UserID: "u1", OpenID: testutil.StrPtr("open")})
	require.NoError(t, err)

	resp, err := svc.VerifyWithProfile(ctx, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, tok.Token, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Handler)
	assert.Equal(t, "alice@example.com", *resp.User.Email)
	assert.Equal(t, "open", *resp.OpenID)
}

func TestRevokeAllForUser(t *testing.T) {
	svc, _ := newService(testutil.ActiveUser("u1", "alice"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Issue(ctx, &models.IssueRequest{UserID: "u1"})
		require.NoError(t, err)
	}

	n, err := svc.RevokeAllForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	tokens, err := svc.ListForUser(ctx, identity("u1"), "")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, t *models.Token) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTokenRepository) FindActive(ctx context.Context, value string) (*models.Token, error) {
	args := m.Called(ctx, value)
	tok, _ := args.Get(0).(*models.Token)
	return tok, args.Error(1)
}

func (m *MockTokenRepository) ListActiveByUser(ctx context.Context, userID string) ([]*models.Token, error) {
	args := m.Called(ctx, userID)
	tokens, _ := args.Get(0).([]*models.Token)
	return tokens, args.Error(1)
}

func (m *MockTokenRepository) Revoke(ctx context.Context, value string) error {
	return m.Called(ctx, value).Error(0)
}

func (m *MockTokenRepository) RevokeAllForUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	values, _ := args.Get(0).([]string)
	return values, args.Error(1)
}

func TestRevoke_LostRaceIsNotFound(t *testing.T) {
	repo := &MockTokenRepository{}
	repo.On("FindActive", mock.Anything, "t1").Return(testutil.ActiveToken("t1", "u1"), nil)
	repo.On("Revoke", mock.Anything, "t1").Return(repository.ErrTokenNotFound)
	svc := NewTokenService(repo, testutil.NewUserRepository(), auth.NewAuthorizer(nil))

	err := svc.Revoke(context.Background(), identity("u1"), "t1")

	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	repo.AssertExpectations(t)
}

func TestValidate_StoreFailureIsInternal(t *testing.T) {
	repo := &MockTokenRepository{}
	repo.On("FindActive", mock.Anything, "t1").Return(nil, errors.New("connection reset"))
	svc := NewTokenService(repo, testutil.NewUserRepository(), auth.NewAuthorizer(nil))

	_, err := svc.Validate(context.Background(), "t1")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
}
