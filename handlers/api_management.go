package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/gidf/donations.api.gidf.org.et/service"
	"github.com/gidf/donations.api.gidf.org.et/transformers"
	"github.com/gidf/donations.api.gidf.org.et/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// HandleListAPIConfigs returns the active bank credential records with secret
// material redacted
func HandleListAPIConfigs(w http.ResponseWriter, req *http.Request) {
	configs, _, err := apiConfigService.ListConfigs()
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error listing bank credentials: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error listing bank credentials"), http.StatusInternalServerError)
		return
	}

	count := len(configs)
	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("bank credentials retrieved", &count, configs), http.StatusOK)
}

// HandleGetAPIConfigStats returns registry-wide usage and expiry statistics
func HandleGetAPIConfigStats(w http.ResponseWriter, req *http.Request) {
	stats, _, err := apiConfigService.UsageStatistics()
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error aggregating credential statistics: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error aggregating statistics"), http.StatusInternalServerError)
		return
	}

	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("statistics retrieved", nil, stats), http.StatusOK)
}

// HandleGetExpiringAPIConfigs returns the credentials expiring within the
// configured alert window
func HandleGetExpiringAPIConfigs(w http.ResponseWriter, req *http.Request) {
	configs, _, err := apiConfigService.Expiring()
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error finding expiring credentials: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error finding expiring credentials"), http.StatusInternalServerError)
		return
	}

	count := len(configs)
	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("expiring credentials retrieved", &count, configs), http.StatusOK)
}

// HandleGetAPIConfig returns one bank's credential record. The lookup counts
// towards the bank's usage statistics.
func HandleGetAPIConfig(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	bankName := vars["bank_name"]

	apiConfig, responseType, err := apiConfigService.GetConfig(bankName)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting credentials for bank [%s]: [%v]", bankName, err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error getting bank credentials"), http.StatusInternalServerError)
		return
	}
	if responseType == service.NotFound {
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("bank not found"), http.StatusNotFound)
		return
	}

	rest := transformers.APIConfigTransformer{}.TransformToRest(*apiConfig)
	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("bank credentials retrieved", nil, rest), http.StatusOK)
}

// HandleUpdateAPIConfig applies the allow-listed update fields to a bank's
// credential record
func HandleUpdateAPIConfig(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	bankName := vars["bank_name"]

	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body empty"), http.StatusBadRequest)
		return
	}

	var update models.APIConfigUpdate
	err := json.NewDecoder(req.Body).Decode(&update)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body invalid"), http.StatusBadRequest)
		return
	}

	apiConfig, responseType, err := apiConfigService.Update(bankName, &update)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error updating credentials for bank [%s]: [%v]", bankName, err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error updating bank credentials"), http.StatusInternalServerError)
		return
	}
	if responseType == service.NotFound {
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("bank not found"), http.StatusNotFound)
		return
	}

	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("bank credentials updated", nil, apiConfig), http.StatusOK)

	log.InfoR(req, "Successful PUT request to update bank credentials", log.Data{"bank_name": bankName})
}

// HandleRenewAPIConfig replaces a bank's credential material
func HandleRenewAPIConfig(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	bankName := vars["bank_name"]

	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body empty"), http.StatusBadRequest)
		return
	}

	var renewal models.APIConfigRenewal
	err := json.NewDecoder(req.Body).Decode(&renewal)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body invalid"), http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err = validate.Struct(renewal); err != nil {
		log.ErrorR(req, fmt.Errorf("invalid renewal for bank [%s]: [%v]", bankName, err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("apiKey, apiSecret, merchantId and expirationDate are required"), http.StatusBadRequest)
		return
	}

	apiConfig, responseType, err := apiConfigService.Renew(bankName, &renewal)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error renewing credentials for bank [%s]: [%v]", bankName, err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error renewing bank credentials"), http.StatusInternalServerError)
		return
	}
	if responseType == service.NotFound {
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("bank not found"), http.StatusNotFound)
		return
	}

	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("bank credentials renewed", nil, apiConfig), http.StatusOK)

	log.InfoR(req, "Successful POST request to renew bank credentials", log.Data{"bank_name": bankName})
}

// HandleCheckExpiration triggers the credential expiry sweep on demand
func HandleCheckExpiration(w http.ResponseWriter, req *http.Request) {
	if err := apiConfigService.CheckExpiringAPIs(); err != nil {
		log.ErrorR(req, fmt.Errorf("error running credential expiry check: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error running expiry check"), http.StatusInternalServerError)
		return
	}

	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("expiry check complete", nil, nil), http.StatusOK)
}

// HandleInitializeAPIConfigs seeds the supported bank credential records.
// Existing records are left untouched.
func HandleInitializeAPIConfigs(w http.ResponseWriter, req *http.Request) {
	if err := apiConfigService.InitializeBankAPIs(); err != nil {
		log.ErrorR(req, fmt.Errorf("error seeding bank credentials: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error seeding bank credentials"), http.StatusInternalServerError)
		return
	}

	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("bank credential registry initialized", nil, nil), http.StatusOK)
}
