package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	userusecases "github.com/sentra-pos/sentra/internal/application/user/usecases"
	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/domain/outlet"
	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/domain/user"
	apperrors "github.com/sentra-pos/sentra/internal/shared/errors"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

// respondError translates domain errors into HTTP responses. Unknown errors
// fall through as opaque 500s.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, outlet.ErrOutletNotFound),
		errors.Is(err, addon.ErrGrantNotFound),
		errors.Is(err, subscription.ErrPeriodNotFound),
		errors.Is(err, subscription.ErrHistoryNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())

	case errors.Is(err, tenant.ErrTenantSlugExists),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, tenant.ErrAlreadyTemporaryUpgrade),
		errors.Is(err, subscription.ErrNoSubscription),
		errors.Is(err, subscription.ErrLedgerConflict),
		errors.Is(err, entitlement.ErrLimitExceeded):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())

	case errors.Is(err, subscription.ErrInvalidPlan),
		errors.Is(err, tenant.ErrNotAnUpgrade),
		errors.Is(err, tenant.ErrTenantNameRequired),
		errors.Is(err, addon.ErrInvalidAddonType),
		errors.Is(err, addon.ErrInvalidResource),
		errors.Is(err, user.ErrInvalidRole):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, userusecases.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid email or password")

	default:
		if appErr, ok := apperrors.IsAppError(err); ok {
			utils.ErrorResponse(c, appErr.Code, appErr.Message)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}
