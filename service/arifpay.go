package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/models"
)

// ArifPayService handles the specific functionality of integrating ArifPay
// hosted checkout sessions into donation flows
type ArifPayService struct {
	DonationService DonationService
	Client          *http.Client
}

// NewArifPayService returns an ArifPayService with the default gateway timeout
func NewArifPayService(donationService DonationService) *ArifPayService {
	return &ArifPayService{
		DonationService: donationService,
		Client:          &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateCheckoutSession creates an ArifPay checkout session and returns the
// hosted checkout URL the donor is redirected to. The primary ArifPay host has
// a history of certificate misconfiguration, so a certificate failure is
// retried once against the fallback host.
func (service *ArifPayService) CreateCheckoutSession(donorResource *models.DonorResourceRest) (string, ResponseType, error) {
	cfg := service.DonationService.Config

	arifPayRequest := models.OutgoingArifPayRequest{
		Amount:      donorResource.Amount,
		Currency:    "ETB",
		Email:       donorResource.Email,
		FirstName:   firstName(donorResource.Name),
		LastName:    lastName(donorResource.Name),
		TxRef:       donorResource.TxRef,
		CallbackURL: callbackURL(cfg.ArifPayCallbackURL, cfg.BackendURL, "arifpay"),
		ReturnURL:   returnURL(cfg.ArifPayReturnURL, cfg.FrontendURL, donorResource.TxRef),
		Customization: models.CheckoutCustomization{
			Title:       "GIDF Donation",
			Description: "Donation to the Great Islamic Dawah Foundation",
		},
	}

	requestBody, err := json.Marshal(arifPayRequest)
	if err != nil {
		return "", Error, fmt.Errorf("error writing request for ArifPay: [%v]", err)
	}

	checkoutURL, responseType, err := service.createSession(cfg.ArifPayAPIURL, requestBody)
	if err != nil && isCertificateError(err) && cfg.ArifPayFallbackURL != "" {
		log.Error(fmt.Errorf("certificate failure from ArifPay, retrying against fallback host: [%v]", err))
		checkoutURL, responseType, err = service.createSession(cfg.ArifPayFallbackURL, requestBody)
	}

	return checkoutURL, responseType, err
}

func (service *ArifPayService) createSession(url string, requestBody []byte) (string, ResponseType, error) {
	cfg := service.DonationService.Config

	request, err := http.NewRequest("POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", Error, fmt.Errorf("error generating request for ArifPay: [%v]", err)
	}

	request.Header.Add("accept", "application/json")
	request.Header.Add("x-arifpay-key", cfg.ArifPaySecretKey)
	request.Header.Add("content-type", "application/json")

	resp, err := service.Client.Do(request)
	if err != nil {
		return "", GatewayUnavailable, fmt.Errorf("error sending request to ArifPay to create checkout session: [%v]", err)
	}

	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", Error, fmt.Errorf("error reading response from ArifPay: [%v]", err)
	}

	arifPayResponse := &models.IncomingArifPayResponse{}
	err = json.Unmarshal(body, arifPayResponse)
	if err != nil {
		return "", Error, fmt.Errorf("error reading response from ArifPay: [%v]", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", GatewayRejected, fmt.Errorf("error status [%v] back from ArifPay: [%s]", resp.StatusCode, arifPayResponse.Message)
	}

	if arifPayResponse.Data.CheckoutURL == "" {
		return "", GatewayRejected, fmt.Errorf("no checkout URL returned from ArifPay")
	}

	return arifPayResponse.Data.CheckoutURL, Success, nil
}

// CheckPaymentProviderStatus verifies the outcome of a checkout session
// against the ArifPay session status endpoint
func (service *ArifPayService) CheckPaymentProviderStatus(donorResource *models.DonorResourceRest) (*models.StatusResponse, ResponseType, error) {
	cfg := service.DonationService.Config

	request, err := http.NewRequest("GET", cfg.ArifPayAPIURL+"/"+donorResource.TxRef, nil)
	if err != nil {
		return nil, Error, fmt.Errorf("error generating request for ArifPay: [%v]", err)
	}

	request.Header.Add("accept", "application/json")
	request.Header.Add("x-arifpay-key", cfg.ArifPaySecretKey)

	resp, err := service.Client.Do(request)
	if err != nil {
		return nil, GatewayUnavailable, fmt.Errorf("error sending request to ArifPay to check session status: [%v]", err)
	}

	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, Error, fmt.Errorf("error reading response from ArifPay when checking session status: [%v]", err)
	}

	verifyResponse := &models.ArifPayVerifyResponse{}
	err = json.Unmarshal(body, verifyResponse)
	if err != nil {
		return nil, Error, fmt.Errorf("error reading response from ArifPay when checking session status: [%v]", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, GatewayRejected, fmt.Errorf("error status [%v] back from ArifPay when checking session status: [%s]", resp.StatusCode, verifyResponse.Message)
	}

	status := "failed"
	if strings.EqualFold(verifyResponse.Data.Status, "success") || strings.EqualFold(verifyResponse.Data.Status, "completed") {
		status = "completed"
	}

	transactionID := verifyResponse.Data.TransactionID
	if transactionID == "" {
		transactionID = verifyResponse.Data.SessionID
	}

	log.Info("verified ArifPay session", log.Data{"tx_ref": donorResource.TxRef, "status": status})

	return &models.StatusResponse{Status: status, TransactionID: transactionID}, Success, nil
}

func isCertificateError(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "certificate") || strings.Contains(message, "x509")
}
