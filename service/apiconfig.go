package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/cache"
	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/dao"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/gidf/donations.api.gidf.org.et/transformers"
)

const apiConfigCacheTTL = 5 * time.Minute

// APIConfigService manages the registry of Ethiopian bank API credentials
// used for payment processing
type APIConfigService struct {
	DAO    dao.DAO
	Config *config.Config
	Cache  cache.Cache
	Outbox *NotificationOutbox
}

// GetConfig returns the active credential record for a bank, or nil when the
// bank is unknown or has no active credentials. Lookups are cached and count
// towards the bank's usage statistics.
func (service *APIConfigService) GetConfig(bankName string) (*models.APIConfigResourceDB, ResponseType, error) {
	cacheKey := "apiconfig:" + bankName

	if cached, ok := service.Cache.Get(cacheKey); ok {
		apiConfig := cached.(*models.APIConfigResourceDB)
		if err := service.DAO.IncrementAPIConfigUsage(bankName); err != nil {
			log.Error(fmt.Errorf("error incrementing usage for bank [%s]: [%v]", bankName, err))
		}
		return apiConfig, Success, nil
	}

	apiConfig, err := service.DAO.GetActiveAPIConfig(bankName)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting credentials for bank [%s]: [%v]", bankName, err)
	}
	if apiConfig == nil {
		return nil, NotFound, nil
	}

	service.Cache.Set(cacheKey, apiConfig, apiConfigCacheTTL)

	if err := service.DAO.IncrementAPIConfigUsage(bankName); err != nil {
		log.Error(fmt.Errorf("error incrementing usage for bank [%s]: [%v]", bankName, err))
	}

	return apiConfig, Success, nil
}

// ListConfigs returns all credential records in their public form
func (service *APIConfigService) ListConfigs() ([]models.APIConfigResourceRest, ResponseType, error) {
	apiConfigs, err := service.DAO.GetActiveAPIConfigs()
	if err != nil {
		return nil, Error, fmt.Errorf("error listing bank credentials: [%v]", err)
	}

	configs := make([]models.APIConfigResourceRest, 0, len(apiConfigs))
	for _, apiConfig := range apiConfigs {
		configs = append(configs, transformers.APIConfigTransformer{}.TransformToRest(apiConfig))
	}
	return configs, Success, nil
}

// Expiring returns the credentials expiring within the configured alert
// window in their public form
func (service *APIConfigService) Expiring() ([]models.APIConfigResourceRest, ResponseType, error) {
	expiring, err := service.DAO.GetExpiringAPIConfigs(service.expiryAlertDays())
	if err != nil {
		return nil, Error, fmt.Errorf("error finding expiring credentials: [%v]", err)
	}

	configs := make([]models.APIConfigResourceRest, 0, len(expiring))
	for _, apiConfig := range expiring {
		configs = append(configs, transformers.APIConfigTransformer{}.TransformToRest(apiConfig))
	}
	return configs, Success, nil
}

// Update applies the allow-listed update fields to a bank's credential record
func (service *APIConfigService) Update(bankName string, update *models.APIConfigUpdate) (*models.APIConfigResourceRest, ResponseType, error) {
	matched, err := service.DAO.UpdateAPIConfig(bankName, update)
	if err != nil {
		return nil, Error, fmt.Errorf("error updating credentials for bank [%s]: [%v]", bankName, err)
	}
	if !matched {
		return nil, NotFound, nil
	}

	service.Cache.Delete("apiconfig:" + bankName)

	apiConfig, err := service.DAO.GetAPIConfig(bankName)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting credentials for bank [%s]: [%v]", bankName, err)
	}

	rest := transformers.APIConfigTransformer{}.TransformToRest(*apiConfig)
	return &rest, Success, nil
}

// Renew replaces a bank's credential material and clears its alert debounce
// flag so a future expiry generates a fresh alert
func (service *APIConfigService) Renew(bankName string, renewal *models.APIConfigRenewal) (*models.APIConfigResourceRest, ResponseType, error) {
	matched, err := service.DAO.RenewAPIConfig(bankName, renewal)
	if err != nil {
		return nil, Error, fmt.Errorf("error renewing credentials for bank [%s]: [%v]", bankName, err)
	}
	if !matched {
		return nil, NotFound, nil
	}

	service.Cache.Delete("apiconfig:" + bankName)

	log.Info("bank API credentials renewed", log.Data{"bank_name": bankName})

	apiConfig, err := service.DAO.GetAPIConfig(bankName)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting credentials for bank [%s]: [%v]", bankName, err)
	}

	rest := transformers.APIConfigTransformer{}.TransformToRest(*apiConfig)
	return &rest, Success, nil
}

// InitializeBankAPIs seeds credential records for the supported Ethiopian
// banks. Existing records are never overwritten, so the seed is safe to run
// on every startup.
func (service *APIConfigService) InitializeBankAPIs() error {
	cfg := service.Config

	seeds := []models.APIConfigResourceDB{
		{BankName: "Commercial Bank of Ethiopia", APIEndpoint: "https://api.cbe.com.et/v1", APIKey: cfg.CBEAPIKey, APISecret: cfg.CBEAPISecret, MerchantID: cfg.CBEMerchantID},
		{BankName: "United Bank", APIEndpoint: "https://api.unitedbank.com.et/v1", APIKey: cfg.UBAPIKey, APISecret: cfg.UBAPISecret, MerchantID: cfg.UBMerchantID},
		{BankName: "Awash Bank", APIEndpoint: "https://api.awashbank.com/v1", APIKey: cfg.AwashAPIKey, APISecret: cfg.AwashAPISecret, MerchantID: cfg.AwashMerchantID},
		{BankName: "Dashen Bank", APIEndpoint: "https://api.dashenbanksc.com/v1", APIKey: cfg.DashenAPIKey, APISecret: cfg.DashenAPISecret, MerchantID: cfg.DashenMerchantID},
		{BankName: "Bank of Abyssinia", APIEndpoint: "https://api.bankofabyssinia.com/v1", APIKey: cfg.BOAAPIKey, APISecret: cfg.BOAAPISecret, MerchantID: cfg.BOAMerchantID},
	}

	now := time.Now()
	seeded := 0

	for _, seed := range seeds {
		existing, err := service.DAO.GetAPIConfig(seed.BankName)
		if err != nil {
			return fmt.Errorf("error checking existing credentials for bank [%s]: [%v]", seed.BankName, err)
		}
		if existing != nil {
			continue
		}

		seed.ExpirationDate = now.AddDate(1, 0, 0)
		seed.IsActive = true
		seed.CreatedAt = now
		seed.UpdatedAt = now

		if err := service.DAO.CreateAPIConfig(&seed); err != nil {
			return fmt.Errorf("error seeding credentials for bank [%s]: [%v]", seed.BankName, err)
		}
		seeded++
	}

	log.Info("bank API credential registry initialized", log.Data{"seeded": seeded})
	return nil
}

// CheckExpiringAPIs finds active credentials expiring within the configured
// alert window and mails an alert for each, debounced so one expiry only
// generates one alert until the credentials are renewed
func (service *APIConfigService) CheckExpiringAPIs() error {
	days := service.expiryAlertDays()

	expiring, err := service.DAO.GetExpiringAPIConfigs(days)
	if err != nil {
		return fmt.Errorf("error finding expiring credentials: [%v]", err)
	}

	for _, apiConfig := range expiring {
		if apiConfig.RenewalAlertSent {
			continue
		}

		rest := transformers.APIConfigTransformer{}.TransformToRest(apiConfig)
		service.Outbox.Enqueue(Notification{
			To:      service.alertRecipient(),
			Subject: fmt.Sprintf("Bank API credentials expiring: %s", apiConfig.BankName),
			Body: fmt.Sprintf(
				"<p>The API credentials for <b>%s</b> expire in %d days, on %s.</p>"+
					"<p>Renew them through the api-management renew endpoint before they lapse.</p>",
				apiConfig.BankName, rest.DaysUntilExpiration, apiConfig.ExpirationDate.Format("2 January 2006")),
		})

		if err := service.DAO.MarkRenewalAlertSent(apiConfig.BankName); err != nil {
			log.Error(fmt.Errorf("error marking alert sent for bank [%s]: [%v]", apiConfig.BankName, err))
		}
	}

	log.Info("credential expiry check complete", log.Data{"expiring": len(expiring)})
	return nil
}

// UsageStatistics aggregates registry-wide usage and expiry statistics
func (service *APIConfigService) UsageStatistics() (*models.APIConfigStatsRest, ResponseType, error) {
	stats, err := service.DAO.GetAPIConfigStats()
	if err != nil {
		return nil, Error, fmt.Errorf("error aggregating credential statistics: [%v]", err)
	}

	expiring, err := service.DAO.GetExpiringAPIConfigs(service.expiryAlertDays())
	if err != nil {
		return nil, Error, fmt.Errorf("error finding expiring credentials: [%v]", err)
	}

	details := make([]models.APIConfigResourceRest, 0, len(expiring))
	for _, apiConfig := range expiring {
		details = append(details, transformers.APIConfigTransformer{}.TransformToRest(apiConfig))
	}

	return &models.APIConfigStatsRest{
		TotalAPIs:           stats.TotalAPIs,
		ActiveAPIs:          stats.ActiveAPIs,
		ExpiredAPIs:         stats.ExpiredAPIs,
		TotalUsage:          stats.TotalUsage,
		ExpiringSoon:        len(expiring),
		ExpiringSoonDetails: details,
	}, Success, nil
}

// SendUsageReport mails the weekly usage report to the configured admin
// address
func (service *APIConfigService) SendUsageReport() error {
	stats, _, err := service.UsageStatistics()
	if err != nil {
		return fmt.Errorf("error building usage report: [%v]", err)
	}

	var expiring strings.Builder
	for _, detail := range stats.ExpiringSoonDetails {
		fmt.Fprintf(&expiring, "<li>%s expires in %d days</li>", detail.BankName, detail.DaysUntilExpiration)
	}
	if expiring.Len() == 0 {
		expiring.WriteString("<li>none</li>")
	}

	service.Outbox.Enqueue(Notification{
		To:      service.reportRecipient(),
		Subject: "Weekly bank API usage report",
		Body: fmt.Sprintf(
			"<p>Registered APIs: %d (%d active, %d expired)</p>"+
				"<p>Total lookups: %d</p>"+
				"<p>Expiring within %d days:</p><ul>%s</ul>",
			stats.TotalAPIs, stats.ActiveAPIs, stats.ExpiredAPIs,
			stats.TotalUsage, service.expiryAlertDays(), expiring.String()),
	})

	return nil
}

func (service *APIConfigService) expiryAlertDays() int {
	days, err := strconv.Atoi(service.Config.ExpiryAlertDays)
	if err != nil || days <= 0 {
		return 7
	}
	return days
}

func (service *APIConfigService) alertRecipient() string {
	if service.Config.AlertEmail != "" {
		return service.Config.AlertEmail
	}
	return service.Config.AdminEmail
}

func (service *APIConfigService) reportRecipient() string {
	return service.Config.AdminEmail
}
