package auth

import (
	"context"
	"net/http"
	"strings"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/features/token/models"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderToken         = "token"
	bearerPrefix        = "bearer "
)

// TokenValidator resolves a raw token value to its Active record. Implementations
// return apperrors.ErrInvalidToken when no Active token matches.
type TokenValidator interface {
	Validate(ctx context.Context, value string) (*models.Token, error)
}

type Authenticator struct {
	tokens TokenValidator
}

func NewAuthenticator(tokens TokenValidator) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// ExtractToken reads the bearer token from "Authorization: Bearer <token>" or, failing
// that, the raw "token" header. Authorization values with another scheme are ignored.
func ExtractToken(r *http.Request) string {
	if h := strings.TrimSpace(r.Header.Get(HeaderAuthorization)); len(h) > len(bearerPrefix) &&
		strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		if v := strings.TrimSpace(h[len(bearerPrefix):]); v != "" {
			return v
		}
	}
	return strings.TrimSpace(r.Header.Get(HeaderToken))
}

// Authenticate resolves the request's token into an Identity. Unknown and revoked tokens
// fail identically.
func (a *Authenticator) Authenticate(r *http.Request) (*Identity, error) {
	value := ExtractToken(r)
	if value == "" {
		return nil, apperrors.ErrMissingToken
	}

	tok, err := a.tokens.Validate(r.Context(), value)
	if err != nil {
		return nil, err
	}
	if tok == nil || !tok.IsActive() {
		return nil, apperrors.ErrInvalidToken
	}

	return &Identity{
		UserID:    tok.UserID,
		Token:     tok.Token,
		AppID:     tok.AppID,
		AppHandle: tok.AppHandle,
		OpenID:    tok.OpenID,
	}, nil
}
