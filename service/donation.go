package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/dao"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/gidf/donations.api.gidf.org.et/transformers"
	"github.com/shopspring/decimal"
	validator "gopkg.in/go-playground/validator.v9"
)

// Payment methods accepted on incoming donation requests
const (
	PaymentMethodChapa        = "chapa"
	PaymentMethodArifPay      = "arifpay"
	PaymentMethodPayPal       = "paypal"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Donation statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// DonationService contains the DAO for db access, the notification outbox and
// the registry of external payment providers
type DonationService struct {
	DAO       dao.DAO
	Config    *config.Config
	Outbox    *NotificationOutbox
	Providers map[string]PaymentProviderService
}

// CreateDonation validates an incoming donation request, initializes a
// checkout session with the chosen payment provider and records the donor.
// Gateway-backed methods leave no donor record when the gateway rejects the
// request or cannot be reached.
func (service *DonationService) CreateDonation(incomingDonationRequest *models.IncomingDonationRequest) (*models.CreateDonationData, ResponseType, error) {
	validate := validator.New()
	err := validate.Struct(incomingDonationRequest)
	if err != nil {
		return nil, InvalidData, fmt.Errorf("invalid incoming donation: [%v]", err)
	}

	if !emailRegex.MatchString(incomingDonationRequest.Email) {
		return nil, InvalidData, fmt.Errorf("invalid email address: [%s]", incomingDonationRequest.Email)
	}

	amount, err := decimal.NewFromString(incomingDonationRequest.Amount.String())
	if err != nil {
		return nil, InvalidData, fmt.Errorf("invalid donation amount: [%v]", err)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, InvalidData, fmt.Errorf("donation amount must be greater than zero: [%s]", amount.String())
	}

	donorResource := &models.DonorResourceRest{
		ID:            generateID(),
		Name:          incomingDonationRequest.Name,
		Email:         incomingDonationRequest.Email,
		Amount:        amount.StringFixed(2),
		PaymentType:   incomingDonationRequest.PaymentType,
		IsCompany:     incomingDonationRequest.IsCompany,
		CompanyName:   incomingDonationRequest.CompanyName,
		PaymentMethod: incomingDonationRequest.PaymentMethod,
		Status:        StatusPending,
		CreatedAt:     time.Now(),
	}

	var checkoutURL string

	switch incomingDonationRequest.PaymentMethod {
	case PaymentMethodBankTransfer:
		donorResource.TransactionID = fmt.Sprintf("manual_%d", time.Now().UnixMilli())

	case PaymentMethodChapa, PaymentMethodArifPay, PaymentMethodPayPal:
		provider, ok := service.Providers[incomingDonationRequest.PaymentMethod]
		if !ok {
			return nil, InvalidData, fmt.Errorf("payment method not configured: [%s]", incomingDonationRequest.PaymentMethod)
		}

		donorResource.TxRef = generateReference()

		nextURL, responseType, err := provider.CreateCheckoutSession(donorResource)
		if err != nil {
			return nil, responseType, fmt.Errorf("error starting checkout session for reference [%s]: [%v]", donorResource.TxRef, err)
		}
		donorResource.CheckoutURL = nextURL
		checkoutURL = nextURL

	default:
		donorResource.Status = StatusCompleted
		donorResource.TransactionID = fmt.Sprintf("txn_%s", randomHex(8))
		donorResource.CompletedAt = time.Now()
	}

	donorResourceDB := transformers.DonorTransformer{}.TransformToDB(*donorResource)
	err = service.DAO.CreateDonorResource(&donorResourceDB)
	if err != nil {
		return nil, Error, fmt.Errorf("error writing donor record to the datastore: [%v]", err)
	}

	log.Info("donation created", log.Data{
		"donor_id":       donorResource.ID,
		"payment_method": donorResource.PaymentMethod,
		"status":         donorResource.Status,
		"tx_ref":         donorResource.TxRef,
	})

	if donorResource.Status == StatusCompleted || donorResource.PaymentMethod == PaymentMethodBankTransfer {
		service.Outbox.EnqueueThankYou(donorResource)
	}

	return &models.CreateDonationData{Donor: donorResource, CheckoutURL: checkoutURL}, Success, nil
}

// GetDonations returns the donor records matching the filter, newest first
func (service *DonationService) GetDonations(filter models.DonorFilter) ([]models.DonorResourceRest, ResponseType, error) {
	donorResources, err := service.DAO.ListDonorResources(filter)
	if err != nil {
		return nil, Error, fmt.Errorf("error listing donor records: [%v]", err)
	}

	donors := make([]models.DonorResourceRest, 0, len(donorResources))
	for _, donorResourceDB := range donorResources {
		donors = append(donors, transformers.DonorTransformer{}.TransformToRest(donorResourceDB))
	}

	return donors, Success, nil
}

// GetDonation returns the donor record with the given id
func (service *DonationService) GetDonation(id string) (*models.DonorResourceRest, ResponseType, error) {
	donorResourceDB, err := service.DAO.GetDonorResource(id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting donor record from the datastore: [%v]", err)
	}
	if donorResourceDB == nil {
		return nil, NotFound, nil
	}

	donorResource := transformers.DonorTransformer{}.TransformToRest(*donorResourceDB)
	return &donorResource, Success, nil
}

// VerifyDonation moves a pending donation to the supplied terminal status. A
// donation already in a terminal state is left untouched.
func (service *DonationService) VerifyDonation(id string, verifyRequest *models.IncomingVerifyRequest) (*models.DonorResourceRest, ResponseType, error) {
	status := verifyRequest.Status
	if status != StatusCompleted && status != StatusFailed {
		return nil, InvalidData, fmt.Errorf("invalid payment status: [%s]", status)
	}

	donorResourceDB, err := service.DAO.GetDonorResource(id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting donor record from the datastore: [%v]", err)
	}
	if donorResourceDB == nil {
		return nil, NotFound, nil
	}

	applied, err := service.DAO.PatchDonorResourceStatus(id, status, verifyRequest.TransactionID)
	if err != nil {
		return nil, Error, fmt.Errorf("error patching donor record status: [%v]", err)
	}

	donorResourceDB, err = service.DAO.GetDonorResource(id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting donor record from the datastore: [%v]", err)
	}
	donorResource := transformers.DonorTransformer{}.TransformToRest(*donorResourceDB)

	if applied && status == StatusCompleted {
		service.Outbox.EnqueueThankYou(&donorResource)
	}

	return &donorResource, Success, nil
}

// ProcessProviderWebhook handles an asynchronous payment notification from a
// gateway. The webhook body is treated as a hint: the outcome is verified
// against the provider, and the body status is only trusted when the provider
// cannot be reached. A verification failure with no body status to fall back
// on leaves the record pending. Redelivered webhooks are no-ops because the
// status patch only applies to pending records.
func (service *DonationService) ProcessProviderWebhook(providerName string, webhook *models.IncomingProviderWebhook) (*models.DonorResourceRest, ResponseType, error) {
	if webhook.TxRef == "" {
		return nil, InvalidData, fmt.Errorf("webhook missing transaction reference")
	}

	donorResourceDB, err := service.DAO.GetDonorResourceByReference(webhook.TxRef)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting donor record from the datastore: [%v]", err)
	}
	if donorResourceDB == nil {
		return nil, NotFound, nil
	}

	donorResource := transformers.DonorTransformer{}.TransformToRest(*donorResourceDB)

	status := normalizeStatus(webhook.Status)
	transactionID := webhook.TransactionID

	provider, ok := service.Providers[providerName]
	if !ok {
		return nil, InvalidData, fmt.Errorf("unknown payment provider: [%s]", providerName)
	}

	statusResponse, _, err := provider.CheckPaymentProviderStatus(&donorResource)
	if err != nil {
		// Verification unavailable. The return-redirect flows carry no status
		// at all; with nothing to fall back on the record is left pending so a
		// later webhook or verification can still settle it.
		if webhook.Status == "" {
			log.Error(fmt.Errorf("error verifying reference [%s] with provider [%s], leaving record pending: [%v]", webhook.TxRef, providerName, err))
			return &donorResource, Success, nil
		}
		// Fall back to the status carried on the webhook body so donor-facing
		// state is not left stale. The webhook has already passed the
		// signature check by this point.
		log.Error(fmt.Errorf("error verifying reference [%s] with provider [%s], trusting webhook body: [%v]", webhook.TxRef, providerName, err))
	} else {
		status = statusResponse.Status
		if statusResponse.TransactionID != "" {
			transactionID = statusResponse.TransactionID
		}
	}

	applied, err := service.DAO.PatchDonorResourceStatus(donorResource.ID, status, transactionID)
	if err != nil {
		return nil, Error, fmt.Errorf("error patching donor record status: [%v]", err)
	}

	donorResourceDB, err = service.DAO.GetDonorResource(donorResource.ID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting donor record from the datastore: [%v]", err)
	}
	donorResource = transformers.DonorTransformer{}.TransformToRest(*donorResourceDB)

	if applied && status == StatusCompleted {
		service.Outbox.EnqueueThankYou(&donorResource)
	}

	return &donorResource, Success, nil
}

func normalizeStatus(status string) string {
	switch strings.ToLower(status) {
	case "success", "successful", "completed":
		return StatusCompleted
	default:
		return StatusFailed
	}
}

// generateReference builds a checkout correlation reference of the form
// TX-<millis>-<8 hex chars>
func generateReference() string {
	return fmt.Sprintf("TX-%d-%s", time.Now().UnixMilli(), randomHex(8))
}

func generateID() string {
	return randomHex(12)
}

func randomHex(n int) string {
	bytes := make([]byte, (n+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		log.Error(fmt.Errorf("error generating random identifier: [%v]", err))
	}
	return hex.EncodeToString(bytes)[:n]
}

func firstName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return fullName
	}
	return parts[0]
}

func lastName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}
