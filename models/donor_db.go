package models

import "time"

// DonorResourceDB contains all donor details to be stored in the DB
type DonorResourceDB struct {
	ID          string              `bson:"_id"`
	TxRef       string              `bson:"tx_ref,omitempty"`
	CheckoutURL string              `bson:"checkout_url,omitempty"`
	Data        DonorResourceDataDB `bson:"data"`
}

// DonorResourceDataDB is the donor-facing part of the record, kept in a
// nested data block so correlation keys outside it can be patched
// independently
type DonorResourceDataDB struct {
	Name          string    `bson:"name"`
	Email         string    `bson:"email"`
	Amount        string    `bson:"amount"`
	PaymentType   string    `bson:"payment_type"`
	IsCompany     bool      `bson:"is_company"`
	CompanyName   string    `bson:"company_name,omitempty"`
	PaymentMethod string    `bson:"payment_method"`
	Status        string    `bson:"status"`
	TransactionID string    `bson:"transaction_id,omitempty"`
	CreatedAt     time.Time `bson:"created_at,omitempty"`
	CompletedAt   time.Time `bson:"completed_at,omitempty"`
}
