package i18n

// Error message keys
const (
	ErrValidation          = "error_validation"
	ErrNotFound            = "error_not_found"
	ErrConflict            = "error_conflict"
	ErrDatabase            = "error_database"
	ErrInternal            = "error_internal"
	ErrRequest             = "error_request"
	ErrRouteNotFound       = "error_route_not_found"
	ErrInvalidRequestBody  = "error_invalid_request_body"
	ErrReferencedNotFound  = "error_referenced_not_found"
	ErrServiceUnavailable  = "error_service_unavailable"
	ErrUserNotFound        = "error_user_not_found"
	ErrBlogNotFound        = "error_blog_not_found"
	ErrProductNotFound     = "error_product_not_found"
	ErrInvalidID           = "error_invalid_id"
	ErrInvalidEmail        = "error_invalid_email"
	ErrFieldRequired       = "error_field_required"
	ErrFieldNotBlank       = "error_field_not_blank"
	ErrFieldString         = "error_field_string"
	ErrFieldPositiveInt    = "error_field_positive_integer"
	ErrFieldNonNegativeInt = "error_field_non_negative_integer"
)

// Success message keys
const (
	MsgDeleted         = "message_deleted"
	MsgProductsListed  = "message_products_listed"
	MsgCustomersListed = "message_customers_listed"
)
