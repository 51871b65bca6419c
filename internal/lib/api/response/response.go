package response

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func Ok(message string) Response {
	return Response{
		Status:  StatusSuccess,
		Message: message,
	}
}

// Success is the bare acknowledgment the messaging provider expects.
func Success() Response {
	return Response{Status: StatusSuccess}
}

func Error(message string) Response {
	return Response{
		Status:  StatusError,
		Message: message,
	}
}
