package service

import (
	"context"
	"fmt"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/plutov/paypal/v4"
)

var paypalClient *paypal.Client

// GetPayPalClient returns an authenticated PayPal client for the configured
// environment
func GetPayPalClient(cfg config.Config) (*paypal.Client, error) {
	if paypalClient != nil {
		return paypalClient, nil
	}

	paypalAPIBase := getPayPalAPIBase(cfg.PaypalEnv)
	if paypalAPIBase == "" {
		return nil, fmt.Errorf("invalid paypal env in config: %s", cfg.PaypalEnv)
	}

	c, err := paypal.NewClient(cfg.PaypalClientID, cfg.PaypalSecret, paypalAPIBase)
	if err != nil {
		return nil, fmt.Errorf("error creating paypal client: [%v]", err)
	}
	_, err = c.GetAccessToken(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting access token: [%v]", err)
	}
	return c, nil
}

// PayPalSDK is an interface for all the PayPal client methods that will be used
// in this service
type PayPalSDK interface {
	GetAccessToken(ctx context.Context) (*paypal.TokenResponse, error)
	CreateOrder(ctx context.Context, intent string, purchaseUnits []paypal.PurchaseUnitRequest, payer *paypal.CreateOrderPayer, appContext *paypal.ApplicationContext) (*paypal.Order, error)
	GetOrder(ctx context.Context, orderID string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string, captureOrderRequest paypal.CaptureOrderRequest) (*paypal.CaptureOrderResponse, error)
}

// PayPalService handles the specific functionality of integrating PayPal into
// donation flows
type PayPalService struct {
	Client          PayPalSDK
	DonationService DonationService
}

// CreateCheckoutSession creates a PayPal order for the donation and returns
// the approval URL the donor is redirected to. The order ID is recorded on the
// donor resource so the outcome can be verified later.
func (pp *PayPalService) CreateCheckoutSession(donorResource *models.DonorResourceRest) (string, ResponseType, error) {
	cfg := pp.DonationService.Config

	order, err := pp.Client.CreateOrder(
		context.Background(),
		paypal.OrderIntentCapture,
		[]paypal.PurchaseUnitRequest{
			{
				ReferenceID: donorResource.TxRef,
				Amount: &paypal.PurchaseUnitAmount{
					Value:    donorResource.Amount,
					Currency: "USD",
				},
			},
		},
		nil,
		&paypal.ApplicationContext{
			ReturnURL: returnURL("", cfg.FrontendURL, donorResource.TxRef),
			CancelURL: cfg.FrontendURL + "/donation/cancelled",
		},
	)
	if err != nil {
		return "", GatewayUnavailable, fmt.Errorf("error creating order: [%v]", err)
	}

	if order.Status != paypal.OrderStatusCreated {
		log.Debug(fmt.Sprintf("paypal order response status: %s", order.Status))
		return "", GatewayRejected, fmt.Errorf("failed to correctly create paypal order - status is not CREATED")
	}

	var nextURL string
	for _, link := range order.Links {
		if link.Rel == "approve" {
			nextURL = link.Href
		}
	}
	if nextURL == "" {
		return "", GatewayRejected, fmt.Errorf("no approval link returned on paypal order [%s]", order.ID)
	}

	donorResource.TransactionID = order.ID

	return nextURL, Success, nil
}

// CheckPaymentProviderStatus checks the status of the donation order with
// PayPal, capturing the order when the donor has approved it
func (pp *PayPalService) CheckPaymentProviderStatus(donorResource *models.DonorResourceRest) (*models.StatusResponse, ResponseType, error) {
	res, err := pp.Client.GetOrder(context.Background(), donorResource.TransactionID)
	if err != nil {
		return nil, GatewayUnavailable, fmt.Errorf("error checking payment status with PayPal: [%v]", err)
	}

	switch res.Status {
	case paypal.OrderStatusCompleted:
		return &models.StatusResponse{Status: "completed", TransactionID: res.ID}, Success, nil
	case paypal.OrderStatusApproved:
		capture, err := pp.Client.CaptureOrder(context.Background(), res.ID, paypal.CaptureOrderRequest{})
		if err != nil {
			return nil, Error, fmt.Errorf("error capturing paypal order [%s]: [%v]", res.ID, err)
		}
		return &models.StatusResponse{Status: "completed", TransactionID: capture.ID}, Success, nil
	default:
		return &models.StatusResponse{Status: "failed", TransactionID: res.ID}, Success, nil
	}
}

func getPayPalAPIBase(env string) string {
	switch env {
	case "live":
		return paypal.APIBaseLive
	case "test":
		return paypal.APIBaseSandBox
	default:
		return ""
	}
}
