package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/middleware"
	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/common/validation"
	"ops-admin-backend/internal/features/reward/models"
	"ops-admin-backend/internal/features/reward/service"
)

type RewardHandler struct {
	history      service.HistoryService
	distribution service.DistributionService
}

func NewRewardHandler(history service.HistoryService, distribution service.DistributionService) *RewardHandler {
	return &RewardHandler{history: history, distribution: distribution}
}

// RegisterRoutes mounts the history endpoints and, behind requireAuth and requireAdmin,
// the distribution endpoints.
func (h *RewardHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, requireAdmin gin.HandlerFunc) {
	history := router.Group("/reward-history")
	{
		history.GET("", h.ListHistory)
		history.POST("", h.CreateHistory)
	}

	rewards := router.Group("/reward")
	{
		rewards.GET("/assets", h.ListAssets)
		rewards.POST("/distribute", requireAuth, requireAdmin, h.Distribute)
		rewards.POST("/distribute/batch", requireAuth, requireAdmin, h.DistributeBatch)
	}
}

// @Summary List reward history
// @Description Paginated distribution history, newest first
// @Tags reward
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param userIdentifier query string false "Substring of user id or Telegram handle"
// @Param assetType query string false "Asset type, 'all' disables the filter"
// @Param status query string false "success, failed or all"
// @Success 200 {object} response.Envelope{data=response.Page[models.RewardDistributionRecord]}
// @Failure 400 {object} response.Envelope
// @Router /reward-history [get]
func (h *RewardHandler) ListHistory(c *gin.Context) {
	page, err := response.ParsePageParams(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	filter := models.HistoryFilter{
		UserIdentifier: strings.TrimSpace(c.Query("userIdentifier")),
		AssetType:      allToEmpty(c.Query("assetType")),
		Status:         allToEmpty(c.Query("status")),
	}
	if filter.Status != "" && filter.Status != models.StatusSuccess && filter.Status != models.StatusFailed {
		_ = c.Error(apperrors.NewValidationError("status", "must be one of: success failed all"))
		return
	}

	result, err := h.history.List(c.Request.Context(), filter, page)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, result, "")
}

// @Summary Append reward history record
// @Tags reward
// @Accept json
// @Produce json
// @Param record body models.CreateRecordRequest true "History record"
// @Success 200 {object} response.Envelope{data=models.RewardDistributionRecord}
// @Failure 400 {object} response.Envelope
// @Router /reward-history [post]
func (h *RewardHandler) CreateHistory(c *gin.Context) {
	var req models.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBindError(err))
		return
	}

	rec, err := h.history.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, rec, "")
}

// @Summary List reward assets
// @Description Asset types accepted by the distribution endpoints
// @Tags reward
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.Asset}
// @Router /reward/assets [get]
func (h *RewardHandler) ListAssets(c *gin.Context) {
	response.OK(c, http.StatusOK, h.distribution.Assets(), "")
}

// @Summary Distribute a reward
// @Description Sends one asset or points transfer to a set of Telegram handles and records the attempt. Upstream failures are reported in the body with status=failed.
// @Tags reward
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DistributeRequest true "Distribution"
// @Success 200 {object} response.Envelope{data=models.DistributeResult}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /reward/distribute [post]
func (h *RewardHandler) Distribute(c *gin.Context) {
	var req models.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBindError(err))
		return
	}

	result, err := h.distribution.Distribute(c.Request.Context(), operator(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, result, "")
}

// @Summary Distribute rewards in batch
// @Description Groups rows by asset, amount and flow, sends one transfer per group and reports each row. Failed groups never abort the others.
// @Tags reward
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.BatchRequest true "Batch"
// @Success 200 {object} response.Envelope{data=models.BatchResult}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /reward/distribute/batch [post]
func (h *RewardHandler) DistributeBatch(c *gin.Context) {
	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBindError(err))
		return
	}

	result, err := h.distribution.DistributeBatch(c.Request.Context(), operator(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, result, "")
}

func operator(c *gin.Context) string {
	if identity, ok := middleware.CurrentIdentity(c); ok {
		return identity.UserID
	}
	return ""
}

func allToEmpty(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
