package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/application/user/usecases"
	"github.com/sentra-pos/sentra/internal/interfaces/http/middleware"
	"github.com/sentra-pos/sentra/internal/shared/logger"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

type UserHandler struct {
	createUserUC    *usecases.CreateUserUseCase
	setUserActiveUC *usecases.SetUserActiveUseCase
	listUsersUC     *usecases.ListUsersUseCase
	logger          logger.Interface
}

func NewUserHandler(
	createUserUC *usecases.CreateUserUseCase,
	setUserActiveUC *usecases.SetUserActiveUseCase,
	listUsersUC *usecases.ListUsersUseCase,
) *UserHandler {
	return &UserHandler{
		createUserUC:    createUserUC,
		setUserActiveUC: setUserActiveUC,
		listUsersUC:     listUsersUC,
		logger:          logger.NewLogger(),
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin_tenant supervisor cashier kitchen"`
}

type SetUserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user",
			"tenant_id", actor.TenantID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.CreateUserCommand{
		TenantID: actor.TenantID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}

	result, err := h.createUserUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User created successfully")
}

// SetUserActive toggles a single user's status by hand. The route's
// MarkManualUserEdit middleware has already flagged the request, so the actor
// carries the marker that keeps a subscription cascade from silently
// overriding this choice.
func (h *UserHandler) SetUserActive(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set user active",
			"user_id", userID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	actor := middleware.ActorFromContext(c)

	cmd := usecases.SetUserActiveCommand{
		TenantID: actor.TenantID,
		UserID:   userID,
		Active:   *req.Active,
		Actor:    actor,
	}

	if err := h.setUserActiveUC.Execute(c.Request.Context(), cmd); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User status updated", nil)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	result, err := h.listUsersUC.Execute(c.Request.Context(), usecases.ListUsersQuery{TenantID: actor.TenantID})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
