package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The storefront and the dashboard map these codes to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthAccountDisabled    = "AUTH_ACCOUNT_DISABLED"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzStaffOnly    = "AUTHZ_STAFF_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound    = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogGroupNotFound      = "CATALOG_GROUP_NOT_FOUND"
	CatalogOptionNotFound     = "CATALOG_OPTION_NOT_FOUND"
	CatalogVariantNotFound    = "CATALOG_VARIANT_NOT_FOUND"
	CatalogGroupHasChildren   = "CATALOG_GROUP_HAS_CHILDREN"
	CatalogOptionInUse        = "CATALOG_OPTION_IN_USE"
	CatalogDuplicateVariant   = "CATALOG_DUPLICATE_VARIANT"
	CatalogInvalidSelection   = "CATALOG_INVALID_SELECTION"
	CatalogIntegrityViolation = "CATALOG_INTEGRITY_VIOLATION"

	// ==================== Stock (STOCK_) ====================
	StockInsufficient   = "STOCK_INSUFFICIENT"
	StockOptionDepleted = "STOCK_OPTION_DEPLETED"

	// ==================== Cart (CART_) ====================
	CartItemNotFound        = "CART_ITEM_NOT_FOUND"
	CartEmpty               = "CART_EMPTY"
	CartRequiredGroupEmpty  = "CART_REQUIRED_GROUP_EMPTY"
	CartSingleGroupConflict = "CART_SINGLE_GROUP_CONFLICT"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound          = "ORDER_NOT_FOUND"
	OrderInvalidStatus     = "ORDER_INVALID_STATUS"
	OrderInvalidTransition = "ORDER_INVALID_TRANSITION"
	OrderNotCancellable    = "ORDER_NOT_CANCELLABLE"

	// ==================== Drivers (DRIVER_) ====================
	DriverNotFound = "DRIVER_NOT_FOUND"
	DriverInactive = "DRIVER_INACTIVE"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
