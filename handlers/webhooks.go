package handlers

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/gidf/donations.api.gidf.org.et/service"
	"github.com/gidf/donations.api.gidf.org.et/utils"
	"github.com/gorilla/mux"
)

// HandleChapaWebhook processes an asynchronous payment notification from Chapa
func HandleChapaWebhook(w http.ResponseWriter, req *http.Request) {
	handleProviderWebhook(w, req, service.PaymentMethodChapa, req.Header.Get("Chapa-Signature"))
}

// HandleArifPayWebhook processes an asynchronous payment notification from
// ArifPay
func HandleArifPayWebhook(w http.ResponseWriter, req *http.Request) {
	handleProviderWebhook(w, req, service.PaymentMethodArifPay, req.Header.Get("X-Arifpay-Signature"))
}

func handleProviderWebhook(w http.ResponseWriter, req *http.Request, providerName, signature string) {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("webhook body empty"))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body empty"), http.StatusBadRequest)
		return
	}

	body, err := ioutil.ReadAll(req.Body)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error reading webhook body: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error reading request body"), http.StatusBadRequest)
		return
	}

	// Signature is checked against the raw body before anything is decoded.
	// Providers without a configured secret skip the check.
	secret := donationService.WebhookSecret(providerName)
	if !service.VerifyWebhookSignature(secret, body, signature) {
		log.ErrorR(req, fmt.Errorf("invalid webhook signature from provider [%s]", providerName))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("invalid webhook signature"), http.StatusUnauthorized)
		return
	}

	var webhook models.IncomingProviderWebhook
	err = json.Unmarshal(body, &webhook)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("webhook body invalid: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body invalid"), http.StatusBadRequest)
		return
	}

	donor, responseType, err := donationService.ProcessProviderWebhook(providerName, &webhook)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error processing [%s] webhook: [%v]", providerName, err))
		switch responseType {
		case service.InvalidData:
			utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("invalid webhook"), http.StatusBadRequest)
			return
		default:
			utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error processing webhook"), http.StatusInternalServerError)
			return
		}
	}
	if responseType == service.NotFound {
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("donation not found"), http.StatusNotFound)
		return
	}

	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("webhook processed", nil, donor), http.StatusOK)

	log.InfoR(req, "Successful webhook notification", log.Data{"provider": providerName, "tx_ref": webhook.TxRef, "payment_status": donor.Status})
}

// HandlePayPalCallback completes a PayPal donation when the donor returns from
// the approval page, then redirects the donor to the outcome page
func HandlePayPalCallback(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id := vars["donation_id"]

	donor, responseType, err := donationService.GetDonation(id)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting donation [%s] for paypal callback: [%v]", id, err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error processing callback"), http.StatusInternalServerError)
		return
	}
	if responseType == service.NotFound {
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("donation not found"), http.StatusNotFound)
		return
	}

	donor, responseType, err = donationService.ProcessProviderWebhook(service.PaymentMethodPayPal, &models.IncomingProviderWebhook{TxRef: donor.TxRef})
	if err != nil && responseType != service.NotFound {
		log.ErrorR(req, fmt.Errorf("error completing paypal donation [%s]: [%v]", id, err))
		http.Redirect(w, req, donationService.Config.FrontendURL+"/donation/failed", http.StatusFound)
		return
	}

	outcome := "/donation/failed"
	if donor != nil && donor.Status == service.StatusCompleted {
		outcome = "/donation/thank-you?tx_ref=" + donor.TxRef
	}
	http.Redirect(w, req, donationService.Config.FrontendURL+outcome, http.StatusFound)

	log.InfoR(req, "Successful GET request for paypal callback", log.Data{"donor_id": id})
}
