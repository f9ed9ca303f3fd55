package dto

// Res is the generic JSON envelope used across the API. Success responses
// attach their payload in handler-specific fields; failures carry a message
// and optionally the raw upstream error.
type Res struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Fail(message string) Res {
	return Res{Success: false, Message: message}
}

func FailWithError(message string, err error) Res {
	r := Res{Success: false, Message: message}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

func OK(message string) Res {
	return Res{Success: true, Message: message}
}
