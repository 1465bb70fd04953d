// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// User Management
	KeyUserNotFound = "user.not_found"

	// Referrals
	KeyReferralApplied = "referral.applied"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductNotFound = "product.not_found"

	// Storefront
	KeyStoreProductAdded   = "store.product_added"
	KeyStoreProductRemoved = "store.product_removed"
	KeyStoreProductExists  = "store.product_exists"
	KeyStoreProductMissing = "store.product_missing"
	KeyStoreCreated        = "store.created"
	KeyStoreCodeTaken      = "store.code_taken"

	// Orders
	KeyOrderCreated       = "order.created"
	KeyOrderBillingFailed = "order.billing_failed"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Generic
	KeyInternalError = "error.internal"
	KeyRateLimited   = "error.rate_limited"
)
