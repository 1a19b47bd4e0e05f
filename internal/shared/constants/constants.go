package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID         = "user_id"
	ContextKeyTenantID       = "tenant_id"
	ContextKeyUserRole       = "user_role"
	ContextKeyManualUserEdit = "manual_user_edit"
	ContextKeyRequestID      = "request_id"

	// Database table names
	TableTenants             = "tenants"
	TableUsers               = "users"
	TableOutlets             = "outlets"
	TableSubscriptionPeriods = "subscription_periods"
	TableSubscriptionHistory = "subscription_history"
	TableAddonGrants         = "addon_grants"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
