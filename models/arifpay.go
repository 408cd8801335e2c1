package models

// OutgoingArifPayRequest is the request sent to ArifPay to create a checkout
// session
type OutgoingArifPayRequest struct {
	Amount        string                `json:"amount"`
	Currency      string                `json:"currency"`
	Email         string                `json:"email"`
	FirstName     string                `json:"first_name"`
	LastName      string                `json:"last_name"`
	TxRef         string                `json:"tx_ref"`
	CallbackURL   string                `json:"callback_url"`
	ReturnURL     string                `json:"return_url"`
	Customization CheckoutCustomization `json:"customization"`
}

// IncomingArifPayResponse is the response expected back from ArifPay after a
// checkout session has been created
type IncomingArifPayResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    ArifPayData `json:"data"`
}

// ArifPayData carries the hosted checkout URL and session for a new session
type ArifPayData struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// ArifPayVerifyResponse is the response from the ArifPay session status
// endpoint
type ArifPayVerifyResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    ArifPayVerifyData `json:"data"`
}

// ArifPayVerifyData is the verified state of an ArifPay session
type ArifPayVerifyData struct {
	Status        string `json:"status"`
	SessionID     string `json:"session_id"`
	TransactionID string `json:"transaction_id"`
}
