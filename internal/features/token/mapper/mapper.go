package mapper

import "ops-admin-backend/internal/features/token/models"

// ToTokenResponse maps a Token record to its public view.
func ToTokenResponse(t *models.Token) *models.TokenResponse {
	return &models.TokenResponse{
		Token:     t.Token,
		UserID:    t.UserID,
		AppID:     t.AppID,
		AppHandle: t.AppHandle,
		OpenID:    t.OpenID,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}

func ToTokenResponses(tokens []*models.Token) []*models.TokenResponse {
	out := make([]*models.TokenResponse, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, ToTokenResponse(t))
	}
	return out
}
