package models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Date parameter is required"`
}

// MessageResponse represents a successful mutation
type MessageResponse struct {
	Message string `json:"message" example:"Journal created successfully"`
}

// StatusMessage is what the client sees after a mutation: the server sends
// either a message or an error, and whichever is present is shown verbatim.
type StatusMessage struct {
	Message *string `json:"message,omitempty"`
	Error   *string `json:"error,omitempty"`
}

func (s StatusMessage) Text() string {
	if s.Message != nil {
		return *s.Message
	}
	if s.Error != nil {
		return *s.Error
	}
	return ""
}

func (s StatusMessage) Failed() bool {
	return s.Message == nil && s.Error != nil
}
