package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/application/addon/usecases"
	"github.com/sentra-pos/sentra/internal/interfaces/http/middleware"
	"github.com/sentra-pos/sentra/internal/shared/logger"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

type AddonHandler struct {
	grantAddonUC  *usecases.GrantAddonUseCase
	revokeAddonUC *usecases.RevokeAddonUseCase
	listAddonsUC  *usecases.ListAddonsUseCase
	logger        logger.Interface
}

func NewAddonHandler(
	grantAddonUC *usecases.GrantAddonUseCase,
	revokeAddonUC *usecases.RevokeAddonUseCase,
	listAddonsUC *usecases.ListAddonsUseCase,
) *AddonHandler {
	return &AddonHandler{
		grantAddonUC:  grantAddonUC,
		revokeAddonUC: revokeAddonUC,
		listAddonsUC:  listAddonsUC,
		logger:        logger.NewLogger(),
	}
}

type GrantAddonRequest struct {
	AddonType    string `json:"addon_type" binding:"required"`
	Limit        *int   `json:"limit" binding:"omitempty,min=1"`
	DurationDays *int   `json:"duration_days" binding:"omitempty,min=1"`
}

func (h *AddonHandler) GrantAddon(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req GrantAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for grant addon",
			"tenant_id", tenantID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.GrantAddonCommand{
		TenantID:     tenantID,
		AddonType:    req.AddonType,
		Limit:        req.Limit,
		DurationDays: req.DurationDays,
	}

	result, err := h.grantAddonUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Addon granted successfully")
}

func (h *AddonHandler) RevokeAddon(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	grantID, err := utils.ParseUintParam(c, "grant_id", "addon grant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RevokeAddonCommand{
		TenantID: tenantID,
		GrantID:  grantID,
	}

	if err := h.revokeAddonUC.Execute(c.Request.Context(), cmd); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *AddonHandler) ListAddons(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if actor := middleware.ActorFromContext(c); !tenantScopeAllowed(actor, tenantID) {
		utils.ErrorResponse(c, http.StatusForbidden, "access to this tenant is not allowed")
		return
	}

	result, err := h.listAddonsUC.Execute(c.Request.Context(), usecases.ListAddonsQuery{TenantID: tenantID})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
