package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: No chat models found. Please install one with: ollama pull llama3.2
	Error string `json:"error" example:"No chat models found. Please install one with: ollama pull llama3.2"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// ModelsResponse is the body of GET /api/v1/models: a bare JSON array.
type ModelsResponse []ModelInfo
