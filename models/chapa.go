package models

// OutgoingChapaRequest is the request sent to Chapa to initialize a checkout
// session
type OutgoingChapaRequest struct {
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

// CheckoutCustomization is the branding block shown on the hosted checkout
// page. Chapa and ArifPay share the same shape.
type CheckoutCustomization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Logo        string `json:"logo,omitempty"`
}

// IncomingChapaResponse is the response expected back from Chapa after a
// checkout session has been initialized
type IncomingChapaResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Data    ChapaData `json:"data"`
}

// ChapaData carries the hosted checkout URL for a new session
type ChapaData struct {
	CheckoutURL string `json:"checkout_url"`
}

// ChapaVerifyResponse is the response from the Chapa transaction verify
// endpoint
type ChapaVerifyResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    ChapaVerifyData `json:"data"`
}

// ChapaVerifyData is the verified state of a Chapa transaction
type ChapaVerifyData struct {
	Status        string `json:"status"`
	TxRef         string `json:"tx_ref"`
	TransactionID string `json:"transaction_id"`
	Reference     string `json:"reference"`
}
