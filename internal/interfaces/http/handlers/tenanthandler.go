package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/application/tenant/usecases"
	"github.com/sentra-pos/sentra/internal/interfaces/http/middleware"
	"github.com/sentra-pos/sentra/internal/shared/logger"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

type TenantHandler struct {
	createTenantUC    *usecases.CreateTenantUseCase
	getTenantUC       *usecases.GetTenantUseCase
	listTenantsUC     *usecases.ListTenantsUseCase
	setTenantActiveUC *usecases.SetTenantActiveUseCase
	logger            logger.Interface
}

func NewTenantHandler(
	createTenantUC *usecases.CreateTenantUseCase,
	getTenantUC *usecases.GetTenantUseCase,
	listTenantsUC *usecases.ListTenantsUseCase,
	setTenantActiveUC *usecases.SetTenantActiveUseCase,
) *TenantHandler {
	return &TenantHandler{
		createTenantUC:    createTenantUC,
		getTenantUC:       getTenantUC,
		listTenantsUC:     listTenantsUC,
		setTenantActiveUC: setTenantActiveUC,
		logger:            logger.NewLogger(),
	}
}

type CreateTenantRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,slug,max=63"`
}

type SetTenantActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create tenant", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.CreateTenantCommand{
		Name: req.Name,
		Slug: req.Slug,
	}

	result, err := h.createTenantUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Tenant created successfully")
}

func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if actor := middleware.ActorFromContext(c); !tenantScopeAllowed(actor, tenantID) {
		utils.ErrorResponse(c, http.StatusForbidden, "access to this tenant is not allowed")
		return
	}

	result, err := h.getTenantUC.Execute(c.Request.Context(), usecases.GetTenantQuery{TenantID: tenantID})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TenantHandler) ListTenants(c *gin.Context) {
	// Only platform operators see the full tenant roster.
	if actor := middleware.ActorFromContext(c); actor.TenantID != 0 {
		utils.ErrorResponse(c, http.StatusForbidden, "access to this tenant is not allowed")
		return
	}

	pagination := utils.ParsePagination(c)

	result, err := h.listTenantsUC.Execute(c.Request.Context(), usecases.ListTenantsQuery{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tenants, result.Total, pagination.Page, pagination.PageSize)
}

func (h *TenantHandler) SetTenantActive(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetTenantActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set tenant active",
			"tenant_id", tenantID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.SetTenantActiveCommand{
		TenantID: tenantID,
		Active:   *req.Active,
		Actor:    middleware.ActorFromContext(c),
	}

	if err := h.setTenantActiveUC.Execute(c.Request.Context(), cmd); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tenant status updated", nil)
}
