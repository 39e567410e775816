package api

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	CodeInvalidJSON    = "INVALID_JSON"
	CodeInvalidQuery   = "INVALID_QUERY"
	CodePlanTooLarge   = "PLAN_TOO_LARGE"
	CodeEstimateFailed = "ESTIMATE_FAILED"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// VersionResponse is the body of GET /version
type VersionResponse struct {
	Version    string `json:"version"`
	Engine     string `json:"engine"`
	APIVersion string `json:"api_version"`
}
