package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/dao"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"
)

type recordingMailer struct {
	mu       sync.Mutex
	sent     []Notification
	failures int
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, Notification{To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type stubProvider struct {
	checkoutURL  string
	createType   ResponseType
	createErr    error
	status       *models.StatusResponse
	statusType   ResponseType
	statusErr    error
	createCalled int
	statusCalled int
}

func (p *stubProvider) CreateCheckoutSession(donor *models.DonorResourceRest) (string, ResponseType, error) {
	p.createCalled++
	return p.checkoutURL, p.createType, p.createErr
}

func (p *stubProvider) CheckPaymentProviderStatus(donor *models.DonorResourceRest) (*models.StatusResponse, ResponseType, error) {
	p.statusCalled++
	return p.status, p.statusType, p.statusErr
}

func createMockDonationService(mockDAO *dao.MockDAO, cfg *config.Config) (*DonationService, *NotificationOutbox) {
	outbox := NewNotificationOutbox(&recordingMailer{}, 10)
	return &DonationService{
		DAO:       mockDAO,
		Config:    cfg,
		Outbox:    outbox,
		Providers: map[string]PaymentProviderService{},
	}, outbox
}

func validDonationRequest(method string) *models.IncomingDonationRequest {
	return &models.IncomingDonationRequest{
		Name:          "Abebe Bikila",
		Email:         "abebe@example.com",
		Amount:        json.Number("500"),
		PaymentType:   "one-time",
		PaymentMethod: method,
	}
}

func TestUnitCreateDonation(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Missing required fields", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)

		donation, responseType, err := donationService.CreateDonation(&models.IncomingDonationRequest{})
		So(donation, ShouldBeNil)
		So(responseType.String(), ShouldEqual, InvalidData.String())
		So(err, ShouldNotBeNil)
	})

	Convey("Malformed email address", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)

		request := validDonationRequest(PaymentMethodBankTransfer)
		request.Email = "not-an-email"

		donation, responseType, err := donationService.CreateDonation(request)
		So(donation, ShouldBeNil)
		So(responseType.String(), ShouldEqual, InvalidData.String())
		So(err.Error(), ShouldContainSubstring, "invalid email address")
	})

	Convey("Zero amount rejected", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)

		request := validDonationRequest(PaymentMethodBankTransfer)
		request.Amount = json.Number("0")

		donation, responseType, err := donationService.CreateDonation(request)
		So(donation, ShouldBeNil)
		So(responseType.String(), ShouldEqual, InvalidData.String())
		So(err.Error(), ShouldContainSubstring, "greater than zero")
	})

	Convey("Bank transfer donation is recorded pending with a manual transaction id", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, outbox := createMockDonationService(mock, cfg)
		mock.EXPECT().CreateDonorResource(gomock.Any()).Return(nil)

		donation, responseType, err := donationService.CreateDonation(validDonationRequest(PaymentMethodBankTransfer))
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(donation.Donor.Status, ShouldEqual, StatusPending)
		So(donation.Donor.TransactionID, ShouldStartWith, "manual_")
		So(donation.Donor.Amount, ShouldEqual, "500.00")
		So(donation.CheckoutURL, ShouldBeEmpty)
		So(len(outbox.queue), ShouldEqual, 1)
	})

	Convey("Legacy payment method completes immediately", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, outbox := createMockDonationService(mock, cfg)
		mock.EXPECT().CreateDonorResource(gomock.Any()).Return(nil)

		donation, responseType, err := donationService.CreateDonation(validDonationRequest("cash"))
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(donation.Donor.Status, ShouldEqual, StatusCompleted)
		So(donation.Donor.TransactionID, ShouldStartWith, "txn_")
		So(donation.Donor.CompletedAt.IsZero(), ShouldBeFalse)
		So(len(outbox.queue), ShouldEqual, 1)
	})

	Convey("Gateway donation persists pending with the checkout URL", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, outbox := createMockDonationService(mock, cfg)
		provider := &stubProvider{checkoutURL: "https://checkout.chapa.co/session/1", createType: Success}
		donationService.Providers[PaymentMethodChapa] = provider
		mock.EXPECT().CreateDonorResource(gomock.Any()).Return(nil)

		donation, responseType, err := donationService.CreateDonation(validDonationRequest(PaymentMethodChapa))
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(provider.createCalled, ShouldEqual, 1)
		So(donation.Donor.Status, ShouldEqual, StatusPending)
		So(donation.Donor.TxRef, ShouldStartWith, "TX-")
		So(strings.Count(donation.Donor.TxRef, "-"), ShouldEqual, 2)
		So(donation.CheckoutURL, ShouldEqual, "https://checkout.chapa.co/session/1")
		So(len(outbox.queue), ShouldEqual, 0)
	})

	Convey("Gateway rejection leaves no donor record", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)
		donationService.Providers[PaymentMethodChapa] = &stubProvider{
			createType: GatewayRejected,
			createErr:  errors.New("amount below gateway minimum"),
		}

		donation, responseType, err := donationService.CreateDonation(validDonationRequest(PaymentMethodChapa))
		So(donation, ShouldBeNil)
		So(responseType.String(), ShouldEqual, GatewayRejected.String())
		So(err, ShouldNotBeNil)
	})

	Convey("Gateway unavailability leaves no donor record", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)
		donationService.Providers[PaymentMethodArifPay] = &stubProvider{
			createType: GatewayUnavailable,
			createErr:  errors.New("connection refused"),
		}

		donation, responseType, err := donationService.CreateDonation(validDonationRequest(PaymentMethodArifPay))
		So(donation, ShouldBeNil)
		So(responseType.String(), ShouldEqual, GatewayUnavailable.String())
		So(err, ShouldNotBeNil)
	})

	Convey("Error writing donor record", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)
		mock.EXPECT().CreateDonorResource(gomock.Any()).Return(fmt.Errorf("connection lost"))

		donation, responseType, err := donationService.CreateDonation(validDonationRequest(PaymentMethodBankTransfer))
		So(donation, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Error.String())
		So(err.Error(), ShouldContainSubstring, "error writing donor record")
	})
}

func TestUnitGetDonations(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Error listing donor records", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)
		mock.EXPECT().ListDonorResources(gomock.Any()).Return(nil, fmt.Errorf("connection lost"))

		donors, responseType, err := donationService.GetDonations(models.DonorFilter{})
		So(donors, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Error.String())
		So(err, ShouldNotBeNil)
	})

	Convey("Donor records are returned as rest models", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)
		mock.EXPECT().ListDonorResources(models.DonorFilter{TxRef: "TX-1-a"}).Return([]models.DonorResourceDB{
			{ID: "d1", TxRef: "TX-1-a", Data: models.DonorResourceDataDB{Name: "Abebe", Status: StatusPending}},
		}, nil)

		donors, responseType, err := donationService.GetDonations(models.DonorFilter{TxRef: "TX-1-a"})
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(len(donors), ShouldEqual, 1)
		So(donors[0].ID, ShouldEqual, "d1")
		So(donors[0].Name, ShouldEqual, "Abebe")
	})
}

func TestUnitVerifyDonation(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	pendingDonor := func() *models.DonorResourceDB {
		return &models.DonorResourceDB{ID: "d1", Data: models.DonorResourceDataDB{Email: "abebe@example.com", Status: StatusPending}}
	}
	completedDonor := func() *models.DonorResourceDB {
		return &models.DonorResourceDB{ID: "d1", Data: models.DonorResourceDataDB{Email: "abebe@example.com", Status: StatusCompleted, TransactionID: "ch-1"}}
	}

	Convey("Invalid target status", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)

		donor, responseType, err := donationService.VerifyDonation("d1", &models.IncomingVerifyRequest{Status: "refunded"})
		So(donor, ShouldBeNil)
		So(responseType.String(), ShouldEqual, InvalidData.String())
		So(err, ShouldNotBeNil)
	})

	Convey("Donation not found", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)
		mock.EXPECT().GetDonorResource("d1").Return(nil, nil)

		donor, responseType, err := donationService.VerifyDonation("d1", &models.IncomingVerifyRequest{Status: StatusCompleted})
		So(donor, ShouldBeNil)
		So(responseType.String(), ShouldEqual, NotFound.String())
		So(err, ShouldBeNil)
	})

	Convey("Pending donation moves to completed and queues one email", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, outbox := createMockDonationService(mock, cfg)
		mock.EXPECT().GetDonorResource("d1").Return(pendingDonor(), nil)
		mock.EXPECT().PatchDonorResourceStatus("d1", StatusCompleted, "ch-1").Return(true, nil)
		mock.EXPECT().GetDonorResource("d1").Return(completedDonor(), nil)

		donor, responseType, err := donationService.VerifyDonation("d1", &models.IncomingVerifyRequest{Status: StatusCompleted, TransactionID: "ch-1"})
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(donor.Status, ShouldEqual, StatusCompleted)
		So(len(outbox.queue), ShouldEqual, 1)
	})

	Convey("Terminal donation is left untouched and no email is queued", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, outbox := createMockDonationService(mock, cfg)
		mock.EXPECT().GetDonorResource("d1").Return(completedDonor(), nil)
		mock.EXPECT().PatchDonorResourceStatus("d1", StatusFailed, "").Return(false, nil)
		mock.EXPECT().GetDonorResource("d1").Return(completedDonor(), nil)

		donor, responseType, err := donationService.VerifyDonation("d1", &models.IncomingVerifyRequest{Status: StatusFailed})
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(donor.Status, ShouldEqual, StatusCompleted)
		So(len(outbox.queue), ShouldEqual, 0)
	})
}

func TestUnitProcessProviderWebhook(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	pendingDonor := func() *models.DonorResourceDB {
		return &models.DonorResourceDB{ID: "d1", TxRef: "TX-1-a", Data: models.DonorResourceDataDB{Email: "abebe@example.com", Status: StatusPending}}
	}
	completedDonor := func() *models.DonorResourceDB {
		return &models.DonorResourceDB{ID: "d1", TxRef: "TX-1-a", Data: models.DonorResourceDataDB{Email: "abebe@example.com", Status: StatusCompleted, TransactionID: "ch-1"}}
	}

	Convey("Webhook without a reference is rejected", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)

		donor, responseType, err := donationService.ProcessProviderWebhook(PaymentMethodChapa, &models.IncomingProviderWebhook{})
		So(donor, ShouldBeNil)
		So(responseType.String(), ShouldEqual, InvalidData.String())
		So(err, ShouldNotBeNil)
	})

	Convey("Unknown reference returns not found", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)
		mock.EXPECT().GetDonorResourceByReference("TX-1-a").Return(nil, nil)

		donor, responseType, err := donationService.ProcessProviderWebhook(PaymentMethodChapa, &models.IncomingProviderWebhook{TxRef: "TX-1-a"})
		So(donor, ShouldBeNil)
		So(responseType.String(), ShouldEqual, NotFound.String())
		So(err, ShouldBeNil)
	})

	Convey("Verified outcome overrides the webhook body status", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, outbox := createMockDonationService(mock, cfg)
		donationService.Providers[PaymentMethodChapa] = &stubProvider{
			status:     &models.StatusResponse{Status: StatusCompleted, TransactionID: "ch-1"},
			statusType: Success,
		}
		mock.EXPECT().GetDonorResourceByReference("TX-1-a").Return(pendingDonor(), nil)
		mock.EXPECT().PatchDonorResourceStatus("d1", StatusCompleted, "ch-1").Return(true, nil)
		mock.EXPECT().GetDonorResource("d1").Return(completedDonor(), nil)

		// Body claims failure, provider verification says completed
		donor, responseType, err := donationService.ProcessProviderWebhook(PaymentMethodChapa, &models.IncomingProviderWebhook{TxRef: "TX-1-a", Status: "failed"})
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(donor.Status, ShouldEqual, StatusCompleted)
		So(len(outbox.queue), ShouldEqual, 1)
	})

	Convey("Webhook body status is trusted when the provider is unreachable", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, _ := createMockDonationService(mock, cfg)
		donationService.Providers[PaymentMethodChapa] = &stubProvider{
			statusType: GatewayUnavailable,
			statusErr:  errors.New("connection refused"),
		}
		mock.EXPECT().GetDonorResourceByReference("TX-1-a").Return(pendingDonor(), nil)
		mock.EXPECT().PatchDonorResourceStatus("d1", StatusCompleted, "ch-9").Return(true, nil)
		mock.EXPECT().GetDonorResource("d1").Return(completedDonor(), nil)

		donor, responseType, err := donationService.ProcessProviderWebhook(PaymentMethodChapa, &models.IncomingProviderWebhook{TxRef: "TX-1-a", Status: "success", TransactionID: "ch-9"})
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(donor.Status, ShouldEqual, StatusCompleted)
	})

	Convey("Verification failure with no body status leaves the donation pending", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, outbox := createMockDonationService(mock, cfg)
		donationService.Providers[PaymentMethodPayPal] = &stubProvider{
			statusType: GatewayUnavailable,
			statusErr:  errors.New("connection refused"),
		}
		mock.EXPECT().GetDonorResourceByReference("TX-1-a").Return(pendingDonor(), nil)

		// The paypal return redirect synthesizes a webhook carrying only the
		// reference. With verification down there is nothing to fall back on,
		// so the record must not be moved to a terminal status.
		donor, responseType, err := donationService.ProcessProviderWebhook(PaymentMethodPayPal, &models.IncomingProviderWebhook{TxRef: "TX-1-a"})
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(donor.Status, ShouldEqual, StatusPending)
		So(len(outbox.queue), ShouldEqual, 0)
	})

	Convey("Redelivered webhook does not queue a second email", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		donationService, outbox := createMockDonationService(mock, cfg)
		donationService.Providers[PaymentMethodChapa] = &stubProvider{
			status:     &models.StatusResponse{Status: StatusCompleted, TransactionID: "ch-1"},
			statusType: Success,
		}
		mock.EXPECT().GetDonorResourceByReference("TX-1-a").Return(completedDonor(), nil)
		mock.EXPECT().PatchDonorResourceStatus("d1", StatusCompleted, "ch-1").Return(false, nil)
		mock.EXPECT().GetDonorResource("d1").Return(completedDonor(), nil)

		donor, responseType, err := donationService.ProcessProviderWebhook(PaymentMethodChapa, &models.IncomingProviderWebhook{TxRef: "TX-1-a", Status: "success"})
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(donor.Status, ShouldEqual, StatusCompleted)
		So(len(outbox.queue), ShouldEqual, 0)
	})
}
