package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// WebhookSecret returns the signing secret configured for the named provider.
// An empty string means signature checks are not enforced for that provider.
func (service *DonationService) WebhookSecret(providerName string) string {
	switch providerName {
	case PaymentMethodChapa:
		return service.Config.ChapaWebhookSecret
	case PaymentMethodArifPay:
		return service.Config.ArifPayWebhookSecret
	default:
		return ""
	}
}

// VerifyWebhookSignature checks the HMAC-SHA256 hex signature of a raw
// webhook body against the provider secret. A provider with no configured
// secret always passes.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	if secret == "" {
		return true
	}
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
