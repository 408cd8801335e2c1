package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/gidf/donations.api.gidf.org.et/service"
	"github.com/gidf/donations.api.gidf.org.et/utils"
	"github.com/gorilla/mux"
)

// HandleCreateDonation validates the incoming donation, initializes a checkout
// session with the chosen payment provider and returns the donor together with
// the URL the donor is redirected to
func HandleCreateDonation(w http.ResponseWriter, req *http.Request) {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body empty"), http.StatusBadRequest)
		return
	}

	requestDecoder := json.NewDecoder(req.Body)
	var incomingDonationRequest models.IncomingDonationRequest
	err := requestDecoder.Decode(&incomingDonationRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body invalid"), http.StatusBadRequest)
		return
	}

	donationData, responseType, err := donationService.CreateDonation(&incomingDonationRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating donation: [%v]", err))
		switch responseType {
		case service.InvalidData, service.GatewayRejected:
			utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("invalid donation request"), http.StatusBadRequest)
			return
		case service.GatewayUnavailable:
			utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("payment gateway unavailable"), http.StatusBadGateway)
			return
		default:
			utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error creating donation"), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("donation initialized", nil, donationData), http.StatusCreated)

	log.InfoR(req, "Successful POST request for new donation", log.Data{"donor_id": donationData.Donor.ID, "status": http.StatusCreated})
}

// HandleGetDonations returns donor records, optionally narrowed by a tx_ref or
// transaction id query parameter
func HandleGetDonations(w http.ResponseWriter, req *http.Request) {
	filter := models.DonorFilter{
		TxRef:         req.URL.Query().Get("tx_ref"),
		TransactionID: req.URL.Query().Get("transactionId"),
	}
	if filter.TransactionID == "" {
		filter.TransactionID = req.URL.Query().Get("transaction_id")
	}

	donors, _, err := donationService.GetDonations(filter)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error listing donations: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error listing donations"), http.StatusInternalServerError)
		return
	}

	count := len(donors)
	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("donations retrieved", &count, donors), http.StatusOK)
}

// HandleVerifyDonation moves a pending donation to the terminal status
// supplied in the request body. Donations already in a terminal state are
// returned unchanged.
func HandleVerifyDonation(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id := vars["donation_id"]

	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body empty"), http.StatusBadRequest)
		return
	}

	requestDecoder := json.NewDecoder(req.Body)
	var verifyRequest models.IncomingVerifyRequest
	err := requestDecoder.Decode(&verifyRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body invalid"), http.StatusBadRequest)
		return
	}

	donor, responseType, err := donationService.VerifyDonation(id, &verifyRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error verifying donation [%s]: [%v]", id, err))
		switch responseType {
		case service.InvalidData:
			utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("invalid payment status"), http.StatusBadRequest)
			return
		default:
			utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error verifying donation"), http.StatusInternalServerError)
			return
		}
	}
	if responseType == service.NotFound {
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("donation not found"), http.StatusNotFound)
		return
	}

	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("donation updated", nil, donor), http.StatusOK)

	log.InfoR(req, "Successful PUT request to verify donation", log.Data{"donor_id": id, "payment_status": donor.Status})
}
