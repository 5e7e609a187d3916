package contract

// Response is the success envelope shared by all payment endpoints.
type Response struct {
	Status  string `json:"status,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Database string `json:"database"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
