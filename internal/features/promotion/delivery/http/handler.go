package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/common/validation"
	"ops-admin-backend/internal/features/promotion/models"
	"ops-admin-backend/internal/features/promotion/service"
)

type PromotionHandler struct {
	service service.PromotionService
}

func NewPromotionHandler(service service.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: service}
}

func (h *PromotionHandler) RegisterRoutes(router *gin.RouterGroup) {
	promotions := router.Group("/promotion")
	{
		promotions.GET("", h.List)
		promotions.POST("", h.Create)
		promotions.PUT("", h.Update)
		promotions.DELETE("", h.Delete)
	}
}

var (
	validStatuses  = []string{models.StatusActive, models.StatusInactive, models.StatusDeleted}
	validPlatforms = []string{models.PlatformLine, models.PlatformTelegram, models.PlatformWeb}
)

// @Summary List promotions
// @Description Paginated promotion listing ordered by priority, event index, then newest. Deleted promotions are hidden unless status=deleted.
// @Tags promotion
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param status query string false "active, inactive or deleted"
// @Param platform query string false "line, telegram or web"
// @Param page_filter query string false "Exact page"
// @Param search query string false "Case-insensitive match on title, tag or url"
// @Success 200 {object} response.Envelope{data=response.Page[models.Promotion]}
// @Failure 400 {object} response.Envelope
// @Router /promotion [get]
func (h *PromotionHandler) List(c *gin.Context) {
	page, err := response.ParsePageParams(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	filter := models.Filter{
		Status:   strings.TrimSpace(c.Query("status")),
		Platform: strings.TrimSpace(c.Query("platform")),
		Page:     strings.TrimSpace(c.Query("page_filter")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if filter.Status != "" && !oneOf(filter.Status, validStatuses) {
		_ = c.Error(apperrors.NewValidationError("status", "must be one of: active inactive deleted"))
		return
	}
	if filter.Platform != "" && !oneOf(filter.Platform, validPlatforms) {
		_ = c.Error(apperrors.NewValidationError("platform", "must be one of: line telegram web"))
		return
	}

	result, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, result, "")
}

// @Summary Create promotion
// @Tags promotion
// @Accept json
// @Produce json
// @Param promotion body models.CreateRequest true "New promotion"
// @Success 200 {object} response.Envelope{data=models.Promotion}
// @Failure 400 {object} response.Envelope
// @Router /promotion [post]
func (h *PromotionHandler) Create(c *gin.Context) {
	var req models.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBindError(err))
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, p, "Promotion created")
}

// @Summary Update promotion
// @Description Partially updates a promotion. Deleted promotions cannot be updated.
// @Tags promotion
// @Accept json
// @Produce json
// @Param promotion body models.UpdateRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Promotion}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /promotion [put]
func (h *PromotionHandler) Update(c *gin.Context) {
	var req models.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBindError(err))
		return
	}

	p, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, p, "Promotion updated")
}

// @Summary Delete promotion
// @Description Marks a promotion deleted
// @Tags promotion
// @Produce json
// @Param id query string true "Promotion id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /promotion [delete]
func (h *PromotionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), strings.TrimSpace(c.Query("id"))); err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, nil, "Promotion deleted")
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
