package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/application/user/usecases"
	"github.com/sentra-pos/sentra/internal/shared/logger"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

type AuthHandler struct {
	loginUC *usecases.LoginWithPasswordUseCase
	logger  logger.Interface
}

func NewAuthHandler(loginUC *usecases.LoginWithPasswordUseCase) *AuthHandler {
	return &AuthHandler{
		loginUC: loginUC,
		logger:  logger.NewLogger(),
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	}

	result, err := h.loginUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}
