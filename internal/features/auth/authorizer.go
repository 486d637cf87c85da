package auth

import "strings"

// Authorizer decides ownership and admin access. Ownership is identity equality;
// admin status comes from a configured user id set.
type Authorizer struct {
	admins map[string]struct{}
}

func NewAuthorizer(adminUserIDs []string) *Authorizer {
	admins := make(map[string]struct{}, len(adminUserIDs))
	for _, id := range adminUserIDs {
		if id = strings.TrimSpace(id); id != "" {
			admins[id] = struct{}{}
		}
	}
	return &Authorizer{admins: admins}
}

// Authorize reports whether identity may act on resources owned by targetUserID.
func (a *Authorizer) Authorize(identity *Identity, targetUserID string) bool {
	if identity == nil || targetUserID == "" {
		return false
	}
	return identity.UserID == targetUserID
}

func (a *Authorizer) IsAdmin(identity *Identity) bool {
	if identity == nil {
		return false
	}
	_, ok := a.admins[identity.UserID]
	return ok
}
