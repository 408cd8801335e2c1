package models

// IncomingProviderWebhook is the asynchronous notification a gateway posts to
// a verify endpoint. The status field is a hint only and is overridden by
// authoritative verification whenever the provider is reachable.
type IncomingProviderWebhook struct {
	TxRef         string `json:"tx_ref"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// StatusResponse is the provider-verified outcome of a checkout session
type StatusResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
}
