package errors

// Error code constants returned to the browser client.
// Format: CATEGORY_SPECIFIC_DETAIL; the client maps these to UI messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthRequired           = "AUTH_REQUIRED"            // no session token present
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // bad username/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // backend token expired
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"     // registration conflict

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request payload
	ValidationFailed       = "VALIDATION_FAILED"        // backend 4xx with message
	ValidationRequired     = "VALIDATION_REQUIRED"      // required field missing

	// ==================== Cart (CART_) ====================
	CartDuplicateItem = "CART_DUPLICATE_ITEM" // item already in cart
	CartNotLoaded     = "CART_NOT_LOADED"     // cart could not be fetched

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutInsufficientBalance = "CHECKOUT_INSUFFICIENT_BALANCE"
	CheckoutNoAddress           = "CHECKOUT_NO_ADDRESS"
	CheckoutNoAddressSelected   = "CHECKOUT_NO_ADDRESS_SELECTED"

	// ==================== Address (ADDRESS_) ====================
	AddressNotFound = "ADDRESS_NOT_FOUND" // selected address not in address book

	// ==================== Upstream (BACKEND_) ====================
	BackendUnreachable = "BACKEND_UNREACHABLE" // transport-level failure
	BackendFault       = "BACKEND_FAULT"       // 5xx or malformed payload

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError  = "INTERNAL_SERVER_ERROR"
	InternalSessionError = "INTERNAL_SESSION_ERROR" // session store failure
)
