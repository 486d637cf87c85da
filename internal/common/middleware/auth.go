package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/features/auth"
)

const keyIdentity = "identity"

// RequireAuth authenticates the request and stores the caller's identity in the context.
func RequireAuth(authenticator *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authenticator.Authenticate(c.Request)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(keyIdentity, identity)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(authorizer *auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			_ = c.Error(apperrors.ErrMissingToken)
			c.Abort()
			return
		}
		if !authorizer.IsAdmin(identity) {
			_ = c.Error(apperrors.NewForbiddenError("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(keyIdentity)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*auth.Identity)
	return identity, ok && identity != nil
}

// SetIdentity is used by tests and alternative authentication paths.
func SetIdentity(c *gin.Context, identity *auth.Identity) {
	c.Set(keyIdentity, identity)
}
