package service

import (
	"github.com/gidf/donations.api.gidf.org.et/models"
)

// PaymentProviderService is an interface for all the requests made to external
// payment providers
type PaymentProviderService interface {
	// CreateCheckoutSession initializes a hosted checkout session for the
	// donor and returns the URL the donor is redirected to
	CreateCheckoutSession(donorResource *models.DonorResourceRest) (string, ResponseType, error)
	// CheckPaymentProviderStatus verifies the outcome of a checkout session
	// against the provider
	CheckPaymentProviderStatus(donorResource *models.DonorResourceRest) (*models.StatusResponse, ResponseType, error)
}
