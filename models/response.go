package models

// DonationResponse is the envelope returned by all donation endpoints
type DonationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateDonationData is the data block returned after a gateway donation is
// initialized
type CreateDonationData struct {
	Donor       *DonorResourceRest `json:"donor"`
	CheckoutURL string             `json:"checkout_url,omitempty"`
}
