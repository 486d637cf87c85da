package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/middleware"
	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/common/validation"
	"ops-admin-backend/internal/features/user/models"
	"ops-admin-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes mounts /user. requireAuth guards every route except registration.
// The Telegram link route is only mounted when telegramAuth is non-nil.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, telegramAuth gin.HandlerFunc) {
	users := router.Group("/user")
	{
		users.POST("", h.Register)
		users.GET("", requireAuth, h.GetMe)
		users.PUT("", requireAuth, h.Update)
		users.DELETE("", requireAuth, h.Delete)
		if telegramAuth != nil {
			users.POST("/telegram", requireAuth, telegramAuth, h.LinkTelegram)
		}
	}
}

// @Summary Get current user
// @Description Returns the full record of the authenticated user
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /user [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	user, err := h.service.GetUser(c.Request.Context(), identity)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, user, "")
}

// @Summary Register user
// @Description Creates a user. The handler must be unique.
// @Tags user
// @Accept json
// @Produce json
// @Param user body models.RegisterRequest true "New user"
// @Success 201 {object} response.Envelope{data=models.User}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Handler already exists"
// @Router /user [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBindError(err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusCreated, user, "User created")
}

// @Summary Update user
// @Description Partially updates the caller's own profile. An optional id must equal the caller.
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.UpdateRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /user [put]
func (h *UserHandler) Update(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req models.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBindError(err))
		return
	}

	user, err := h.service.Update(c.Request.Context(), identity, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, user, "User updated")
}

// @Summary Link Telegram account
// @Description Binds the caller to the Telegram account proven by Mini App init data. POST /token/telegram issues tokens for linked accounts only.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Security TelegramInitData
// @Param init_data header string true "Telegram Mini App init data"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Telegram account linked to another user"
// @Router /user/telegram [post]
func (h *UserHandler) LinkTelegram(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	tgUser, ok := middleware.TelegramUser(c)
	if !ok {
		_ = c.Error(apperrors.NewUnauthorizedError(apperrors.ErrCodeUnauthorized, "telegram init data required"))
		return
	}

	user, err := h.service.LinkTelegram(c.Request.Context(), identity, tgUser.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, user, "Telegram account linked")
}

// @Summary Delete user
// @Description Logically deletes the user and revokes all of its tokens
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param id query string false "User id, defaults to the caller"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /user [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	if err := h.service.Delete(c.Request.Context(), identity, c.Query("id")); err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, nil, "User deleted")
}
