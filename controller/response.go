package controller

// ErrorResponse is the error body of the relay endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Response is the envelope of every management endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
