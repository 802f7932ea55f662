package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldError detalle de una validación fallida.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationErrorResponse error 400 con el detalle por campo.
type ValidationErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields"`
}

// HealthResponse salida de GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Cache  string `json:"cache"`
}
