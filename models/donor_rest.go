package models

import (
	"encoding/json"
	"time"
)

// IncomingDonationRequest is the data received in the body of the incoming
// request to create a donation
type IncomingDonationRequest struct {
	Name          string      `json:"name"          validate:"required"`
	Email         string      `json:"email"         validate:"required"`
	Amount        json.Number `json:"amount"        validate:"required"`
	PaymentType   string      `json:"paymentType"   validate:"required"`
	IsCompany     bool        `json:"isCompany"`
	CompanyName   string      `json:"companyName"`
	PaymentMethod string      `json:"paymentMethod" validate:"required"`
}

// DonorResourceRest is public facing donor details to be returned in responses
type DonorResourceRest struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Amount        string    `json:"amount"`
	PaymentType   string    `json:"paymentType"`
	IsCompany     bool      `json:"isCompany"`
	CompanyName   string    `json:"companyName,omitempty"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"paymentStatus"`
	TransactionID string    `json:"transactionId,omitempty"`
	TxRef         string    `json:"tx_ref,omitempty"`
	CheckoutURL   string    `json:"checkout_url,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	CompletedAt   time.Time `json:"completedAt,omitempty"`
}

// IncomingVerifyRequest is the body of a manual verification request
type IncomingVerifyRequest struct {
	Status        string `json:"paymentStatus"`
	TransactionID string `json:"transactionId"`
}

// DonorFilter narrows donation list queries to a single correlation key
type DonorFilter struct {
	TxRef         string
	TransactionID string
}
