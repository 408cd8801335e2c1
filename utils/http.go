package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/models"
)

// ResponseResource is the object returned in an error case
type ResponseResource struct {
	Message string `json:"message"`
}

// NewMessageResponse - convenience function for creating a response resource
func NewMessageResponse(message string) *ResponseResource {
	return &ResponseResource{Message: message}
}

// NewSuccessResponse creates the standard success envelope. Count and data
// are omitted from the body when nil.
func NewSuccessResponse(message string, count *int, data interface{}) *models.DonationResponse {
	return &models.DonationResponse{
		Success: true,
		Message: message,
		Count:   count,
		Data:    data,
	}
}

// NewErrorResponse creates the standard failure envelope
func NewErrorResponse(message string) *models.DonationResponse {
	return &models.DonationResponse{
		Success: false,
		Error:   message,
	}
}

// WriteJSONWithStatus writes the interface as a json string with the supplied status.
func WriteJSONWithStatus(w http.ResponseWriter, r *http.Request, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		log.ErrorR(r, fmt.Errorf("error writing response: %v", err))
	}
}
