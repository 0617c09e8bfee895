package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The rendering layer maps these codes onto user-visible messages.

const (
	// ==================== Feed (FEED_) ====================
	FeedHTMLResponse = "FEED_HTML_RESPONSE" // upstream returned an HTML page, likely a login redirect
	FeedEmpty        = "FEED_EMPTY"         // request succeeded but no active records exist
	FeedUnavailable  = "FEED_UNAVAILABLE"   // transport failure or malformed JSON

	// ==================== Cart (CART_) ====================
	CartInvalidQty   = "CART_INVALID_QTY"   // quantity is not a positive integer
	CartInvalidPrice = "CART_INVALID_PRICE" // negative unit price
	CartInvalidSKU   = "CART_INVALID_SKU"   // empty sku

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound = "CATALOG_PRODUCT_NOT_FOUND" // unknown product id

	// ==================== Auth (AUTH_) ====================
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email or password

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"

	// ==================== Server ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
