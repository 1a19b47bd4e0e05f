package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/application/subscription/usecases"
	"github.com/sentra-pos/sentra/internal/interfaces/http/middleware"
	"github.com/sentra-pos/sentra/internal/shared/logger"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

type SubscriptionHandler struct {
	grantSubscriptionUC     *usecases.GrantSubscriptionUseCase
	temporaryUpgradeUC      *usecases.TemporaryUpgradeUseCase
	extendSubscriptionUC    *usecases.ExtendSubscriptionUseCase
	getSubscriptionStatusUC *usecases.GetSubscriptionStatusUseCase
	listHistoryUC           *usecases.ListSubscriptionHistoryUseCase
	logger                  logger.Interface
}

func NewSubscriptionHandler(
	grantSubscriptionUC *usecases.GrantSubscriptionUseCase,
	temporaryUpgradeUC *usecases.TemporaryUpgradeUseCase,
	extendSubscriptionUC *usecases.ExtendSubscriptionUseCase,
	getSubscriptionStatusUC *usecases.GetSubscriptionStatusUseCase,
	listHistoryUC *usecases.ListSubscriptionHistoryUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		grantSubscriptionUC:     grantSubscriptionUC,
		temporaryUpgradeUC:      temporaryUpgradeUC,
		extendSubscriptionUC:    extendSubscriptionUC,
		getSubscriptionStatusUC: getSubscriptionStatusUC,
		listHistoryUC:           listHistoryUC,
		logger:                  logger.NewLogger(),
	}
}

type GrantSubscriptionRequest struct {
	Plan         string `json:"plan" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"required,min=1"`
}

type TemporaryUpgradeRequest struct {
	Plan         string `json:"plan" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"required,min=1"`
}

type ExtendSubscriptionRequest struct {
	AdditionalDays int `json:"additional_days" binding:"required,min=1"`
}

func (h *SubscriptionHandler) GrantSubscription(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req GrantSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for grant subscription",
			"tenant_id", tenantID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.GrantSubscriptionCommand{
		TenantID:     tenantID,
		Plan:         req.Plan,
		DurationDays: req.DurationDays,
		Actor:        middleware.ActorFromContext(c),
	}

	result, err := h.grantSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription granted successfully")
}

func (h *SubscriptionHandler) TemporaryUpgrade(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req TemporaryUpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for temporary upgrade",
			"tenant_id", tenantID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.TemporaryUpgradeCommand{
		TenantID:     tenantID,
		Plan:         req.Plan,
		DurationDays: req.DurationDays,
		Actor:        middleware.ActorFromContext(c),
	}

	result, err := h.temporaryUpgradeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Temporary upgrade applied successfully")
}

func (h *SubscriptionHandler) ExtendSubscription(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ExtendSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for extend subscription",
			"tenant_id", tenantID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.ExtendSubscriptionCommand{
		TenantID:       tenantID,
		AdditionalDays: req.AdditionalDays,
		Actor:          middleware.ActorFromContext(c),
	}

	result, err := h.extendSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription extended successfully", result)
}

func (h *SubscriptionHandler) GetSubscriptionStatus(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	if !tenantScopeAllowed(actor, tenantID) {
		utils.ErrorResponse(c, http.StatusForbidden, "access to this tenant is not allowed")
		return
	}

	q := usecases.GetSubscriptionStatusQuery{
		TenantID: tenantID,
		Actor:    actor,
	}

	result, err := h.getSubscriptionStatusUC.Execute(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) ListSubscriptionHistory(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if actor := middleware.ActorFromContext(c); !tenantScopeAllowed(actor, tenantID) {
		utils.ErrorResponse(c, http.StatusForbidden, "access to this tenant is not allowed")
		return
	}

	result, err := h.listHistoryUC.Execute(c.Request.Context(), usecases.ListSubscriptionHistoryQuery{TenantID: tenantID})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
