package handlers

import (
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/interceptors"
	"github.com/gidf/donations.api.gidf.org.et/service"
	"github.com/gorilla/mux"
)

var donationService *service.DonationService
var apiConfigService *service.APIConfigService
var messageService *service.MessageService

// Register defines the route mappings for the main router and its subrouters
func Register(mainRouter *mux.Router, cfg *config.Config, donationSvc *service.DonationService, apiConfigSvc *service.APIConfigService, messageSvc *service.MessageService) {
	donationService = donationSvc
	apiConfigService = apiConfigSvc
	messageService = messageSvc

	cors := &interceptors.CORSInterceptor{
		AllowedOrigins: cfg.AllowedOrigins(),
	}

	mainRouter.HandleFunc("/api/health", HandleHealthCheck).Methods("GET").Name("get-health")

	// Webhook endpoints authenticate by signature rather than origin, so they
	// get their own subrouter without the CORS interceptor.
	webhookRouter := mainRouter.PathPrefix("/api/donations").Subrouter()
	webhookRouter.HandleFunc("/verify-chapa", HandleChapaWebhook).Methods("POST").Name("chapa-webhook")
	webhookRouter.HandleFunc("/verify-arifpay", HandleArifPayWebhook).Methods("POST").Name("arifpay-webhook")
	webhookRouter.HandleFunc("/verify-paypal/{donation_id}", HandlePayPalCallback).Methods("GET").Name("paypal-callback")

	donationRouter := mainRouter.PathPrefix("/api/donations").Subrouter()
	donationRouter.HandleFunc("", HandleCreateDonation).Methods("POST").Name("create-donation")
	donationRouter.HandleFunc("", HandleGetDonations).Methods("GET").Name("get-donations")
	donationRouter.HandleFunc("/{donation_id}/verify", HandleVerifyDonation).Methods("PUT").Name("verify-donation")
	donationRouter.HandleFunc("", handlePreflight).Methods("OPTIONS").Name("donation-preflight")
	donationRouter.PathPrefix("/").HandlerFunc(handlePreflight).Methods("OPTIONS").Name("donation-subpath-preflight")

	messageRouter := mainRouter.PathPrefix("/api/messages").Subrouter()
	messageRouter.HandleFunc("/contact", HandleCreateMessage).Methods("POST").Name("create-message")
	messageRouter.HandleFunc("/all", HandleListMessages).Methods("GET").Name("list-messages")
	messageRouter.PathPrefix("/").HandlerFunc(handlePreflight).Methods("OPTIONS").Name("message-preflight")

	apiManagementRouter := mainRouter.PathPrefix("/api/api-management").Subrouter()
	apiManagementRouter.HandleFunc("", HandleListAPIConfigs).Methods("GET").Name("list-api-configs")
	apiManagementRouter.HandleFunc("/stats", HandleGetAPIConfigStats).Methods("GET").Name("api-config-stats")
	apiManagementRouter.HandleFunc("/expiring", HandleGetExpiringAPIConfigs).Methods("GET").Name("expiring-api-configs")
	apiManagementRouter.HandleFunc("/check-expiration", HandleCheckExpiration).Methods("POST").Name("check-expiration")
	apiManagementRouter.HandleFunc("/initialize", HandleInitializeAPIConfigs).Methods("POST").Name("initialize-api-configs")
	apiManagementRouter.HandleFunc("/{bank_name}", HandleGetAPIConfig).Methods("GET").Name("get-api-config")
	apiManagementRouter.HandleFunc("/{bank_name}", HandleUpdateAPIConfig).Methods("PUT").Name("update-api-config")
	apiManagementRouter.HandleFunc("/{bank_name}/renew", HandleRenewAPIConfig).Methods("POST").Name("renew-api-config")
	apiManagementRouter.HandleFunc("", handlePreflight).Methods("OPTIONS").Name("api-management-preflight")
	apiManagementRouter.PathPrefix("/").HandlerFunc(handlePreflight).Methods("OPTIONS").Name("api-management-subpath-preflight")

	webhookRouter.Use(log.Handler)
	donationRouter.Use(log.Handler, cors.CORSIntercept)
	messageRouter.Use(log.Handler, cors.CORSIntercept)
	apiManagementRouter.Use(log.Handler, cors.CORSIntercept)
}

// handlePreflight is never reached: the CORS interceptor answers OPTIONS
// requests before the route handler runs. It exists so mux matches the method.
func handlePreflight(_ http.ResponseWriter, _ *http.Request) {}
