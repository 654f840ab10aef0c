package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField: "Required field is missing",
	CodeInvalidInput:  "Invalid input provided",
	CodeInvalidFormat: "Invalid data format",
	CodeNotFound:      "Resource not found",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Token resolution errors
	CodeUnsupportedToken: "Token is not supported on the active network",
	CodeInvalidAmount:    "Invalid swap amount",

	// Upstream market-data errors
	CodePriceFetchFailed:      "Price lookup failed",
	CodePoolFetchFailed:       "Liquidity pool lookup failed",
	CodeAggregatorUnavailable: "External aggregator unavailable",
	CodeMalformedQuote:        "Aggregator returned a malformed quote",

	// Quote selection errors
	CodeNoQuoteAvailable:      "No quote available for this pair",
	CodeInsufficientLiquidity: "Insufficient liquidity for this trade",

	// Swap execution errors
	CodePayloadBuildFailed: "Failed to build transaction payload",

	// Cache errors
	CodeCacheMiss:    "Cache entry not found",
	CodeCacheExpired: "Cache entry expired",

	// Circuit breaker errors
	CodeCircuitOpen: "Circuit breaker open",
}
