package dto

// FieldErrorResponse names one invalid input field.
type FieldErrorResponse struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message"`
	Fields  []FieldErrorResponse `json:"fields,omitempty"`
}

// HealthResponse reports service readiness.
type HealthResponse struct {
	Status string `json:"status"`
}
