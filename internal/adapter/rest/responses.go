package rest

// API error codes surfaced to the presentation layer.
const (
	CodeInvalidJSON        = "INVALID_JSON"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeMissingDescription = "MISSING_DESCRIPTION"
	CodeContentBlocked     = "CONTENT_BLOCKED"
	CodeSecurityBlocked    = "SECURITY_BLOCKED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// RecommendationData is the success payload of the recommend endpoint.
type RecommendationData struct {
	Recommendation string `json:"recommendation"`
	Reasoning      string `json:"reasoning"`
	Genre          string `json:"genre"`
	Year           string `json:"year"`
}

// SuccessResponse wraps a payload in the success envelope.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse is the failure envelope shared by all endpoints.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody describes one failure, optionally with remediation details.
type ErrorBody struct {
	Message string        `json:"message"`
	Code    string        `json:"code,omitempty"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails carries the content-safety specifics of a blocked request.
type ErrorDetails struct {
	BlockedContent []string `json:"blockedContent,omitempty"`
	Suggestions    []string `json:"suggestions,omitempty"`
}

func newSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

func newErrorResponse(message, code string, details *ErrorDetails) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Message: message,
			Code:    code,
			Details: details,
		},
	}
}
