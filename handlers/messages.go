package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/gidf/donations.api.gidf.org.et/service"
	"github.com/gidf/donations.api.gidf.org.et/utils"
)

// HandleCreateMessage records a contact-form submission and queues the
// acknowledgment and admin notification emails
func HandleCreateMessage(w http.ResponseWriter, req *http.Request) {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body empty"), http.StatusBadRequest)
		return
	}

	requestDecoder := json.NewDecoder(req.Body)
	var incomingMessageRequest models.IncomingMessageRequest
	err := requestDecoder.Decode(&incomingMessageRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("request body invalid"), http.StatusBadRequest)
		return
	}

	message, responseType, err := messageService.CreateMessage(&incomingMessageRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating contact message: [%v]", err))
		switch responseType {
		case service.InvalidData:
			utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("all fields are required"), http.StatusBadRequest)
			return
		default:
			utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error processing message"), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("Your message has been received. Thank you for contacting us!", nil, message), http.StatusCreated)

	log.InfoR(req, "Successful POST request for new contact message", log.Data{"message_id": message.ID, "status": http.StatusCreated})
}

// HandleListMessages returns all contact messages, newest first
func HandleListMessages(w http.ResponseWriter, req *http.Request) {
	messages, _, err := messageService.GetMessages()
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error listing contact messages: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewErrorResponse("error listing messages"), http.StatusInternalServerError)
		return
	}

	count := len(messages)
	utils.WriteJSONWithStatus(w, req, utils.NewSuccessResponse("messages retrieved", &count, messages), http.StatusOK)
}
