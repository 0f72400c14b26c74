package apierror

// Error type URIs following the urn:quietmind:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:quietmind:error:validation"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:quietmind:error:bad_request"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:quietmind:error:unauthorized"

	// TypeForbidden indicates insufficient permissions (403)
	TypeForbidden = "urn:quietmind:error:forbidden"

	// TypeConflict indicates a resource conflict, e.g. a duplicate email (409)
	TypeConflict = "urn:quietmind:error:conflict"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:quietmind:error:rate_limit"

	// TypeUpstream indicates the reflection provider returned a failure (500)
	TypeUpstream = "urn:quietmind:error:upstream"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:quietmind:error:internal"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation   = "Validation Error"
	TitleBadRequest   = "Bad Request"
	TitleUnauthorized = "Authentication Required"
	TitleForbidden    = "Permission Denied"
	TitleConflict     = "Resource Conflict"
	TitleRateLimit    = "Rate Limit Exceeded"
	TitleUpstream     = "Reflection Service Error"
	TitleInternal     = "Internal Server Error"
)
