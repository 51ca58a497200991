package api

import "encoding/json"

// APIError is a non-success backend response reduced to a single message.
// Detail prefers the backend's structured "detail" field and falls back to
// the per-operation message when the payload lacks one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

// IsAuthError reports whether the response invalidates the session.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == 401
}

// errorBody mirrors the backend's error payload shape.
type errorBody struct {
	Detail string `json:"detail"`
}

func decodeError(status int, data []byte, fallback string) *APIError {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		return &APIError{StatusCode: status, Detail: body.Detail}
	}
	return &APIError{StatusCode: status, Detail: fallback}
}
