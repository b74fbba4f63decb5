package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// RetryableErrorResponse is returned when the client may retry the
// same request, e.g. a checkout confirmation that has not settled yet.
type RetryableErrorResponse struct {
	Error     string `json:"error" example:"checkout not completed yet"`
	Retryable bool   `json:"retryable" example:"true"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
