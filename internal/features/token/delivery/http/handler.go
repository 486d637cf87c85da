package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/middleware"
	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/common/validation"
	"ops-admin-backend/internal/features/token/mapper"
	"ops-admin-backend/internal/features/token/models"
	"ops-admin-backend/internal/features/token/service"
)

type TokenHandler struct {
	service service.TokenService
}

func NewTokenHandler(service service.TokenService) *TokenHandler {
	return &TokenHandler{service: service}
}

// RegisterRoutes mounts /token. telegramAuth is nil when no bot token is configured.
func (h *TokenHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, telegramAuth gin.HandlerFunc) {
	tokens := router.Group("/token")
	{
		tokens.POST("", h.Issue)
		tokens.PUT("", h.Verify)
		tokens.GET("", requireAuth, h.List)
		tokens.DELETE("", requireAuth, h.Revoke)
		if telegramAuth != nil {
			tokens.POST("/telegram", telegramAuth, h.IssueForTelegram)
		}
	}
}

// @Summary Issue token
// @Description Issues a new Active token for an existing user
// @Tags token
// @Accept json
// @Produce json
// @Param request body models.IssueRequest true "Token owner"
// @Success 200 {object} response.Envelope{data=models.TokenResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope "User not found"
// @Router /token [post]
func (h *TokenHandler) Issue(c *gin.Context) {
	var req models.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBindError(err))
		return
	}

	t, err := h.service.Issue(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, mapper.ToTokenResponse(t), "Token created")
}

// @Summary Issue token via Telegram
// @Description Validates Telegram Mini App init data and issues a token for the user linked to that Telegram account (see POST /user/telegram)
// @Tags token
// @Produce json
// @Param init_data header string true "Telegram Mini App init data"
// @Success 200 {object} response.Envelope{data=models.TokenResponse}
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /token/telegram [post]
func (h *TokenHandler) IssueForTelegram(c *gin.Context) {
	tgUser, ok := middleware.TelegramUser(c)
	if !ok {
		_ = c.Error(apperrors.NewUnauthorizedError(apperrors.ErrCodeUnauthorized, "telegram init data required"))
		return
	}

	t, err := h.service.IssueForTelegram(c.Request.Context(), tgUser.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, mapper.ToTokenResponse(t), "Token created")
}

// @Summary Verify token
// @Description Checks that a token is Active and returns it with the owner's public profile
// @Tags token
// @Accept json
// @Produce json
// @Param request body models.VerifyRequest true "Token to verify"
// @Success 200 {object} response.Envelope{data=models.VerifyResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope "Invalid or revoked token"
// @Router /token [put]
func (h *TokenHandler) Verify(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBindError(err))
		return
	}

	resp, err := h.service.VerifyWithProfile(c.Request.Context(), req.Token)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, resp, "Token verified")
}

// @Summary List tokens
// @Description Lists the caller's Active tokens
// @Tags token
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Must equal the caller"
// @Success 200 {object} response.Envelope{data=[]models.TokenResponse}
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /token [get]
func (h *TokenHandler) List(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	tokens, err := h.service.ListForUser(c.Request.Context(), identity, c.Query("user_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, mapper.ToTokenResponses(tokens), "")
}

// @Summary Revoke token
// @Description Revokes one of the caller's Active tokens
// @Tags token
// @Produce json
// @Security BearerAuth
// @Param token query string true "Token value"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Token not found or already revoked"
// @Router /token [delete]
func (h *TokenHandler) Revoke(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	if err := h.service.Revoke(c.Request.Context(), identity, c.Query("token")); err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, nil, "Token revoked")
}
