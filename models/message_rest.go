package models

import "time"

// IncomingMessageRequest is the data received in the body of a contact-form
// submission
type IncomingMessageRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// MessageResourceRest is a contact-form message returned in responses
type MessageResourceRest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
