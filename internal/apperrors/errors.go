package apperrors

import "net/http"

// ValidationError aggregates every constraint violated by a request.
// FormErrors holds failures that are not tied to a single field (unknown
// keys, empty update body); FieldErrors maps a field name to its messages.
type ValidationError struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// NewValidationError creates an empty ValidationError.
// Slices and maps are initialized so the JSON shape is always [] / {}.
func NewValidationError() *ValidationError {
	return &ValidationError{
		FormErrors:  make([]string, 0),
		FieldErrors: make(map[string][]string),
	}
}

// AddField records a message against a specific field.
func (e *ValidationError) AddField(field, message string) {
	e.FieldErrors[field] = append(e.FieldErrors[field], message)
}

// AddForm records a message not tied to any field.
func (e *ValidationError) AddForm(message string) {
	e.FormErrors = append(e.FormErrors, message)
}

// HasErrors reports whether any violation was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.FormErrors) > 0 || len(e.FieldErrors) > 0
}

func (e *ValidationError) Error() string {
	return "Erro de validação"
}

// NotFoundError is a domain error carrying the status code and user-facing
// message to surface at the HTTP boundary.
type NotFoundError struct {
	Status  int
	Message string
}

// NewNotFound creates a NotFoundError with a 404 status.
func NewNotFound(message string) *NotFoundError {
	return &NotFoundError{
		Status:  http.StatusNotFound,
		Message: message,
	}
}

func (e *NotFoundError) Error() string {
	return e.Message
}
