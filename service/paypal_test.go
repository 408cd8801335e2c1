package service

import (
	"fmt"
	"testing"

	"github.com/plutov/paypal/v4"

	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/dao"
	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"
)

func createMockPayPalService(sdk PayPalSDK, donationService *DonationService) PayPalService {
	return PayPalService{
		Client:          sdk,
		DonationService: *donationService,
	}
}

func TestUnitPayPalCreateCheckoutSession(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()
	donationService, _ := createMockDonationService(dao.NewMockDAO(mockCtrl), cfg)
	mockPayPalSDK := NewMockPayPalSDK(mockCtrl)
	paypalService := createMockPayPalService(mockPayPalSDK, donationService)

	Convey("Error when creating an order in PayPal", t, func() {
		donor := testDonor()
		donor.PaymentMethod = "paypal"

		mockPayPalSDK.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("error"))

		url, responseType, err := paypalService.CreateCheckoutSession(donor)

		So(url, ShouldBeEmpty)
		So(responseType, ShouldEqual, GatewayUnavailable)
		So(err.Error(), ShouldContainSubstring, "error creating order: [error]")
	})

	Convey("Order status is not created - unsuccessful", t, func() {
		donor := testDonor()
		donor.PaymentMethod = "paypal"

		order := paypal.Order{
			ID:     "123",
			Status: paypal.OrderStatusVoided,
		}

		mockPayPalSDK.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&order, nil)

		url, responseType, err := paypalService.CreateCheckoutSession(donor)

		So(url, ShouldBeEmpty)
		So(responseType, ShouldEqual, GatewayRejected)
		So(err.Error(), ShouldContainSubstring, "failed to correctly create paypal order")
	})

	Convey("Successfully create paypal order", t, func() {
		donor := testDonor()
		donor.PaymentMethod = "paypal"

		order := paypal.Order{
			ID:     "123",
			Status: paypal.OrderStatusCreated,
			Links: []paypal.Link{
				{
					Href:        "approve_url",
					Rel:         "approve",
					Method:      "GET",
					Description: "Approve an order",
				},
			},
		}

		mockPayPalSDK.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&order, nil)

		url, responseType, err := paypalService.CreateCheckoutSession(donor)

		So(url, ShouldEqual, "approve_url")
		So(responseType, ShouldEqual, Success)
		So(err, ShouldBeNil)
		So(donor.TransactionID, ShouldEqual, "123")
	})
}

func TestUnitPayPalCheckPaymentProviderStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()
	donationService, _ := createMockDonationService(dao.NewMockDAO(mockCtrl), cfg)
	mockPayPalSDK := NewMockPayPalSDK(mockCtrl)
	paypalService := createMockPayPalService(mockPayPalSDK, donationService)

	Convey("Error checking order status with PayPal", t, func() {
		donor := testDonor()
		donor.TransactionID = "123"

		mockPayPalSDK.EXPECT().GetOrder(gomock.Any(), "123").Return(nil, fmt.Errorf("error"))

		statusResponse, responseType, err := paypalService.CheckPaymentProviderStatus(donor)

		So(statusResponse, ShouldBeNil)
		So(responseType, ShouldEqual, GatewayUnavailable)
		So(err, ShouldNotBeNil)
	})

	Convey("Completed order maps to a completed donation", t, func() {
		donor := testDonor()
		donor.TransactionID = "123"

		order := paypal.Order{
			ID:     "123",
			Status: paypal.OrderStatusCompleted,
		}

		mockPayPalSDK.EXPECT().GetOrder(gomock.Any(), "123").Return(&order, nil)

		statusResponse, responseType, err := paypalService.CheckPaymentProviderStatus(donor)

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(statusResponse.Status, ShouldEqual, "completed")
		So(statusResponse.TransactionID, ShouldEqual, "123")
	})

	Convey("Approved order is captured", t, func() {
		donor := testDonor()
		donor.TransactionID = "123"

		order := paypal.Order{
			ID:     "123",
			Status: paypal.OrderStatusApproved,
		}

		mockPayPalSDK.EXPECT().GetOrder(gomock.Any(), "123").Return(&order, nil)
		mockPayPalSDK.EXPECT().CaptureOrder(gomock.Any(), "123", gomock.Any()).Return(&paypal.CaptureOrderResponse{ID: "capture-1"}, nil)

		statusResponse, responseType, err := paypalService.CheckPaymentProviderStatus(donor)

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(statusResponse.Status, ShouldEqual, "completed")
		So(statusResponse.TransactionID, ShouldEqual, "capture-1")
	})

	Convey("Error capturing an approved order", t, func() {
		donor := testDonor()
		donor.TransactionID = "123"

		order := paypal.Order{
			ID:     "123",
			Status: paypal.OrderStatusApproved,
		}

		mockPayPalSDK.EXPECT().GetOrder(gomock.Any(), "123").Return(&order, nil)
		mockPayPalSDK.EXPECT().CaptureOrder(gomock.Any(), "123", gomock.Any()).Return(nil, fmt.Errorf("error"))

		statusResponse, responseType, err := paypalService.CheckPaymentProviderStatus(donor)

		So(statusResponse, ShouldBeNil)
		So(responseType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "error capturing paypal order")
	})

	Convey("Voided order maps to a failed donation", t, func() {
		donor := testDonor()
		donor.TransactionID = "123"

		order := paypal.Order{
			ID:     "123",
			Status: paypal.OrderStatusVoided,
		}

		mockPayPalSDK.EXPECT().GetOrder(gomock.Any(), "123").Return(&order, nil)

		statusResponse, responseType, err := paypalService.CheckPaymentProviderStatus(donor)

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(statusResponse.Status, ShouldEqual, "failed")
	})
}
