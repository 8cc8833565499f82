package dto

// Envelope wraps every successful response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Meta carries list pagination.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Status     string       `json:"status"`
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	Code       string       `json:"code,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Details    any          `json:"details,omitempty"`
	Stack      string       `json:"stack,omitempty"`
}

// FieldError names one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
