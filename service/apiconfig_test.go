package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/gidf/donations.api.gidf.org.et/cache"
	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/dao"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"
)

func createMockAPIConfigService(mockDAO *dao.MockDAO, cfg *config.Config) *APIConfigService {
	return &APIConfigService{
		DAO:    mockDAO,
		Config: cfg,
		Cache:  cache.NewMemoryCache(),
		Outbox: NewNotificationOutbox(&recordingMailer{}, 10),
	}
}

func activeConfig(bankName string) *models.APIConfigResourceDB {
	return &models.APIConfigResourceDB{
		BankName:       bankName,
		APIEndpoint:    "https://api.example.com/v1",
		APIKey:         "key",
		APISecret:      "secret",
		MerchantID:     "merchant",
		ExpirationDate: time.Now().AddDate(0, 6, 0),
		IsActive:       true,
	}
}

func TestUnitGetConfig(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Unknown bank returns not found without an error", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		apiConfigService := createMockAPIConfigService(mock, cfg)
		mock.EXPECT().GetActiveAPIConfig("Nonexistent Bank").Return(nil, nil)

		apiConfig, responseType, err := apiConfigService.GetConfig("Nonexistent Bank")
		So(apiConfig, ShouldBeNil)
		So(responseType.String(), ShouldEqual, NotFound.String())
		So(err, ShouldBeNil)
	})

	Convey("Lookup hits the datastore once and is then served from cache", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		apiConfigService := createMockAPIConfigService(mock, cfg)
		mock.EXPECT().GetActiveAPIConfig("Awash Bank").Return(activeConfig("Awash Bank"), nil).Times(1)
		mock.EXPECT().IncrementAPIConfigUsage("Awash Bank").Return(nil).Times(2)

		first, responseType, err := apiConfigService.GetConfig("Awash Bank")
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(first.APIKey, ShouldEqual, "key")

		second, responseType, err := apiConfigService.GetConfig("Awash Bank")
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(second, ShouldEqual, first)
	})

	Convey("Datastore error propagates", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		apiConfigService := createMockAPIConfigService(mock, cfg)
		mock.EXPECT().GetActiveAPIConfig("Awash Bank").Return(nil, fmt.Errorf("connection lost"))

		apiConfig, responseType, err := apiConfigService.GetConfig("Awash Bank")
		So(apiConfig, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Error.String())
		So(err, ShouldNotBeNil)
	})
}

func TestUnitRenewAPIConfig(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	renewal := &models.APIConfigRenewal{
		APIKey:         "new-key",
		APISecret:      "new-secret",
		MerchantID:     "new-merchant",
		ExpirationDate: time.Now().AddDate(1, 0, 0),
	}

	Convey("Unknown bank returns not found", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		apiConfigService := createMockAPIConfigService(mock, cfg)
		mock.EXPECT().RenewAPIConfig("Nonexistent Bank", renewal).Return(false, nil)

		apiConfig, responseType, err := apiConfigService.Renew("Nonexistent Bank", renewal)
		So(apiConfig, ShouldBeNil)
		So(responseType.String(), ShouldEqual, NotFound.String())
		So(err, ShouldBeNil)
	})

	Convey("Renewal invalidates the cached credentials", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		apiConfigService := createMockAPIConfigService(mock, cfg)
		apiConfigService.Cache.Set("apiconfig:Awash Bank", activeConfig("Awash Bank"), time.Minute)

		mock.EXPECT().RenewAPIConfig("Awash Bank", renewal).Return(true, nil)
		mock.EXPECT().GetAPIConfig("Awash Bank").Return(activeConfig("Awash Bank"), nil)

		apiConfig, responseType, err := apiConfigService.Renew("Awash Bank", renewal)
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(apiConfig.BankName, ShouldEqual, "Awash Bank")

		_, cached := apiConfigService.Cache.Get("apiconfig:Awash Bank")
		So(cached, ShouldBeFalse)
	})
}

func TestUnitInitializeBankAPIs(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("All five banks are seeded on an empty registry", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		apiConfigService := createMockAPIConfigService(mock, cfg)
		mock.EXPECT().GetAPIConfig(gomock.Any()).Return(nil, nil).Times(5)
		mock.EXPECT().CreateAPIConfig(gomock.Any()).Return(nil).Times(5)

		So(apiConfigService.InitializeBankAPIs(), ShouldBeNil)
	})

	Convey("Existing records are never overwritten", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		apiConfigService := createMockAPIConfigService(mock, cfg)
		mock.EXPECT().GetAPIConfig(gomock.Any()).Return(activeConfig("seeded"), nil).Times(5)

		So(apiConfigService.InitializeBankAPIs(), ShouldBeNil)
	})
}

func TestUnitCheckExpiringAPIs(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Alert is queued once per expiring credential", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		apiConfigService := createMockAPIConfigService(mock, cfg)

		expiring := *activeConfig("Awash Bank")
		expiring.ExpirationDate = time.Now().Add(48 * time.Hour)
		alreadyAlerted := *activeConfig("Dashen Bank")
		alreadyAlerted.RenewalAlertSent = true

		mock.EXPECT().GetExpiringAPIConfigs(7).Return([]models.APIConfigResourceDB{expiring, alreadyAlerted}, nil)
		mock.EXPECT().MarkRenewalAlertSent("Awash Bank").Return(nil)

		So(apiConfigService.CheckExpiringAPIs(), ShouldBeNil)
		So(len(apiConfigService.Outbox.queue), ShouldEqual, 1)
	})
}

func TestUnitUsageStatistics(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Statistics include the expiring credential details", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		apiConfigService := createMockAPIConfigService(mock, cfg)

		mock.EXPECT().GetAPIConfigStats().Return(&models.APIConfigStatsDB{
			TotalAPIs:   5,
			ActiveAPIs:  4,
			ExpiredAPIs: 1,
			TotalUsage:  120,
		}, nil)
		mock.EXPECT().GetExpiringAPIConfigs(7).Return([]models.APIConfigResourceDB{*activeConfig("Awash Bank")}, nil)

		stats, responseType, err := apiConfigService.UsageStatistics()
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(stats.TotalAPIs, ShouldEqual, 5)
		So(stats.TotalUsage, ShouldEqual, 120)
		So(stats.ExpiringSoon, ShouldEqual, 1)
		So(stats.ExpiringSoonDetails[0].BankName, ShouldEqual, "Awash Bank")
	})
}
