package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField Code = "REQUIRED_FIELD"
	CodeInvalidInput  Code = "INVALID_INPUT"
	CodeInvalidFormat Code = "INVALID_FORMAT"
	CodeNotFound      Code = "NOT_FOUND"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Routing-specific error codes
const (
	// Token resolution errors
	CodeUnsupportedToken Code = "UNSUPPORTED_TOKEN"
	CodeInvalidAmount    Code = "INVALID_AMOUNT"

	// Upstream market-data errors
	CodePriceFetchFailed      Code = "PRICE_FETCH_FAILED"
	CodePoolFetchFailed       Code = "POOL_FETCH_FAILED"
	CodeAggregatorUnavailable Code = "AGGREGATOR_UNAVAILABLE"
	CodeMalformedQuote        Code = "MALFORMED_QUOTE"

	// Quote selection errors
	CodeNoQuoteAvailable      Code = "NO_QUOTE_AVAILABLE"
	CodeInsufficientLiquidity Code = "INSUFFICIENT_LIQUIDITY"

	// Swap execution errors
	CodePayloadBuildFailed Code = "PAYLOAD_BUILD_FAILED"

	// Cache errors
	CodeCacheMiss    Code = "CACHE_MISS"
	CodeCacheExpired Code = "CACHE_EXPIRED"

	// Circuit breaker errors
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
