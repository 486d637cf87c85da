package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/common/validation"
	"ops-admin-backend/internal/features/community/models"
	"ops-admin-backend/internal/features/community/service"
)

type CommunityHandler struct {
	service service.CommunityService
}

func NewCommunityHandler(service service.CommunityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

func (h *CommunityHandler) RegisterRoutes(router *gin.RouterGroup) {
	communities := router.Group("/community")
	{
		communities.GET("", h.List)
		communities.PATCH("", h.SetCertification)
	}
}

// @Summary List communities
// @Description Paginated community listing with creator summaries, newest first
// @Tags community
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param status query string false "Exact status"
// @Param category query string false "Category contained in the community's categories"
// @Param search query string false "Case-insensitive match on name, handle or description"
// @Success 200 {object} response.Envelope{data=response.Page[models.Community]}
// @Failure 400 {object} response.Envelope
// @Router /community [get]
func (h *CommunityHandler) List(c *gin.Context) {
	page, err := response.ParsePageParams(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	filter := models.Filter{
		Status:   strings.TrimSpace(c.Query("status")),
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
	}

	result, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, result, "")
}

// @Summary Set community certification
// @Tags community
// @Accept json
// @Produce json
// @Param request body models.CertificationRequest true "Handle and certification flag"
// @Success 200 {object} response.Envelope{data=models.Community}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /community [patch]
func (h *CommunityHandler) SetCertification(c *gin.Context) {
	var req models.CertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBindError(err))
		return
	}

	community, err := h.service.SetCertification(c.Request.Context(), req.Handle, *req.Certification)
	if err != nil {
		_ = c.Error(err)
		return
	}

	message := "Community certification revoked"
	if *req.Certification {
		message = "Community certified"
	}
	response.OK(c, http.StatusOK, community, message)
}
