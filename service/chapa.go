package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/models"
)

// ChapaService handles the specific functionality of integrating Chapa
// hosted checkout sessions into donation flows
type ChapaService struct {
	DonationService DonationService
	Client          *http.Client
}

// NewChapaService returns a ChapaService with the default gateway timeout
func NewChapaService(donationService DonationService) *ChapaService {
	return &ChapaService{
		DonationService: donationService,
		Client:          &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateCheckoutSession initializes a Chapa transaction and returns the hosted
// checkout URL the donor is redirected to
func (service *ChapaService) CreateCheckoutSession(donorResource *models.DonorResourceRest) (string, ResponseType, error) {
	cfg := service.DonationService.Config

	chapaRequest := models.OutgoingChapaRequest{
		Amount:      donorResource.Amount,
		Currency:    "ETB",
		Email:       donorResource.Email,
		FirstName:   firstName(donorResource.Name),
		LastName:    lastName(donorResource.Name),
		TxRef:       donorResource.TxRef,
		CallbackURL: callbackURL(cfg.ChapaCallbackURL, cfg.BackendURL, "chapa"),
		ReturnURL:   returnURL(cfg.ChapaReturnURL, cfg.FrontendURL, donorResource.TxRef),
		Customization: models.CheckoutCustomization{
			Title:       "GIDF Donation",
			Description: "Donation to the Great Islamic Dawah Foundation",
		},
	}

	requestBody, err := json.Marshal(chapaRequest)
	if err != nil {
		return "", Error, fmt.Errorf("error writing request for Chapa: [%v]", err)
	}

	request, err := http.NewRequest("POST", cfg.ChapaAPIURL+"/initialize", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", Error, fmt.Errorf("error generating request for Chapa: [%v]", err)
	}

	request.Header.Add("accept", "application/json")
	request.Header.Add("authorization", "Bearer "+cfg.ChapaSecretKey)
	request.Header.Add("content-type", "application/json")

	resp, err := service.Client.Do(request)
	if err != nil {
		return "", GatewayUnavailable, fmt.Errorf("error sending request to Chapa to start checkout session: [%v]", err)
	}

	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", Error, fmt.Errorf("error reading response from Chapa: [%v]", err)
	}

	chapaResponse := &models.IncomingChapaResponse{}
	err = json.Unmarshal(body, chapaResponse)
	if err != nil {
		return "", Error, fmt.Errorf("error reading response from Chapa: [%v]", err)
	}

	if resp.StatusCode != http.StatusOK || chapaResponse.Status != "success" {
		return "", GatewayRejected, fmt.Errorf("error status [%v] back from Chapa: [%s]", resp.StatusCode, chapaResponse.Message)
	}

	if chapaResponse.Data.CheckoutURL == "" {
		return "", GatewayRejected, fmt.Errorf("no checkout URL returned from Chapa for reference [%s]", donorResource.TxRef)
	}

	return chapaResponse.Data.CheckoutURL, Success, nil
}

// CheckPaymentProviderStatus verifies the outcome of a checkout session
// against the Chapa transaction verify endpoint
func (service *ChapaService) CheckPaymentProviderStatus(donorResource *models.DonorResourceRest) (*models.StatusResponse, ResponseType, error) {
	cfg := service.DonationService.Config

	request, err := http.NewRequest("GET", cfg.ChapaAPIURL+"/verify/"+donorResource.TxRef, nil)
	if err != nil {
		return nil, Error, fmt.Errorf("error generating request for Chapa: [%v]", err)
	}

	request.Header.Add("accept", "application/json")
	request.Header.Add("authorization", "Bearer "+cfg.ChapaSecretKey)

	resp, err := service.Client.Do(request)
	if err != nil {
		return nil, GatewayUnavailable, fmt.Errorf("error sending request to Chapa to check transaction status: [%v]", err)
	}

	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, Error, fmt.Errorf("error reading response from Chapa when checking transaction status: [%v]", err)
	}

	verifyResponse := &models.ChapaVerifyResponse{}
	err = json.Unmarshal(body, verifyResponse)
	if err != nil {
		return nil, Error, fmt.Errorf("error reading response from Chapa when checking transaction status: [%v]", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, GatewayRejected, fmt.Errorf("error status [%v] back from Chapa when checking transaction status: [%s]", resp.StatusCode, verifyResponse.Message)
	}

	status := "failed"
	if verifyResponse.Status == "success" && verifyResponse.Data.Status == "success" {
		status = "completed"
	}

	transactionID := verifyResponse.Data.Reference
	if transactionID == "" {
		transactionID = verifyResponse.Data.TransactionID
	}

	log.Info("verified Chapa transaction", log.Data{"tx_ref": donorResource.TxRef, "status": status})

	return &models.StatusResponse{Status: status, TransactionID: transactionID}, Success, nil
}

func callbackURL(override, backendURL, provider string) string {
	if override != "" {
		return override
	}
	return backendURL + "/api/donations/verify-" + provider
}

func returnURL(override, frontendURL, txRef string) string {
	if override != "" {
		return override
	}
	return frontendURL + "/donation/thank-you?tx_ref=" + txRef
}
