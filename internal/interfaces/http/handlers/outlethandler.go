package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/application/outlet/usecases"
	"github.com/sentra-pos/sentra/internal/interfaces/http/middleware"
	"github.com/sentra-pos/sentra/internal/shared/logger"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

type OutletHandler struct {
	createOutletUC *usecases.CreateOutletUseCase
	listOutletsUC  *usecases.ListOutletsUseCase
	logger         logger.Interface
}

func NewOutletHandler(
	createOutletUC *usecases.CreateOutletUseCase,
	listOutletsUC *usecases.ListOutletsUseCase,
) *OutletHandler {
	return &OutletHandler{
		createOutletUC: createOutletUC,
		listOutletsUC:  listOutletsUC,
		logger:         logger.NewLogger(),
	}
}

type CreateOutletRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"max=255"`
}

func (h *OutletHandler) CreateOutlet(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	var req CreateOutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create outlet",
			"tenant_id", actor.TenantID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.CreateOutletCommand{
		TenantID: actor.TenantID,
		Name:     req.Name,
		Address:  req.Address,
	}

	result, err := h.createOutletUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Outlet created successfully")
}

func (h *OutletHandler) ListOutlets(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	result, err := h.listOutletsUC.Execute(c.Request.Context(), usecases.ListOutletsQuery{TenantID: actor.TenantID})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
