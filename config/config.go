// Package config defines the environment variable and command-line flags
// supported by this service and includes default values for particular
// fields.
package config

import (
	"strings"
	"sync"

	"github.com/companieshouse/gofigure"
)

var cfg *Config
var mtx sync.Mutex

// Config defines the configuration options for this service.
type Config struct {
	BindAddr             string `env:"BIND_ADDR"                     flag:"bind-addr"                     flagDesc:"Bind address"`
	Environment          string `env:"ENVIRONMENT"                   flag:"environment"                   flagDesc:"Deployment environment, e.g. development or production"`
	MongoDBURL           string `env:"MONGODB_URL"                   flag:"mongodb-url"                   flagDesc:"MongoDB server URL"`
	Database             string `env:"MONGODB_DATABASE"              flag:"mongodb-database"              flagDesc:"MongoDB database for data"`
	DonorsCollection     string `env:"MONGODB_DONORS_COLLECTION"     flag:"mongodb-donors-collection"     flagDesc:"MongoDB collection for donor records"`
	MessagesCollection   string `env:"MONGODB_MESSAGES_COLLECTION"   flag:"mongodb-messages-collection"   flagDesc:"MongoDB collection for contact messages"`
	APIConfigsCollection string `env:"MONGODB_APICONFIGS_COLLECTION" flag:"mongodb-apiconfigs-collection" flagDesc:"MongoDB collection for bank API credentials"`
	FrontendURL          string `env:"FRONTEND_URL"                  flag:"frontend-url"                  flagDesc:"Base URL of the donation website frontend"`
	BackendURL           string `env:"BACKEND_URL"                   flag:"backend-url"                   flagDesc:"Base URL of this API, used to build webhook callback URLs"`
	CORSAllowedOrigins   string `env:"CORS_ALLOWED_ORIGINS"          flag:"cors-allowed-origins"          flagDesc:"Comma separated list of origins allowed to call the API"`
	ChapaAPIURL          string `env:"CHAPA_API_URL"                 flag:"chapa-api-url"                 flagDesc:"URL used to make calls to Chapa"`
	ChapaSecretKey       string `env:"CHAPA_SECRET_KEY"              flag:"chapa-secret-key"              flagDesc:"Bearer token used to authenticate API calls with Chapa"`
	ChapaWebhookSecret   string `env:"CHAPA_WEBHOOK_SECRET"          flag:"chapa-webhook-secret"          flagDesc:"Secret used to validate the signature on inbound Chapa webhooks"`
	ChapaCallbackURL     string `env:"CHAPA_CALLBACK_URL"            flag:"chapa-callback-url"            flagDesc:"Override for the Chapa webhook callback URL"`
	ChapaReturnURL       string `env:"CHAPA_RETURN_URL"              flag:"chapa-return-url"              flagDesc:"Override for the Chapa browser return URL"`
	ArifPayAPIURL        string `env:"ARIFPAY_API_URL"               flag:"arifpay-api-url"               flagDesc:"URL used to make calls to ArifPay"`
	ArifPayFallbackURL   string `env:"ARIFPAY_FALLBACK_API_URL"      flag:"arifpay-fallback-api-url"      flagDesc:"Fallback host used when the ArifPay certificate fails validation"`
	ArifPaySecretKey     string `env:"ARIFPAY_SECRET_KEY"            flag:"arifpay-secret-key"            flagDesc:"API key used to authenticate calls with ArifPay"`
	ArifPayWebhookSecret string `env:"ARIFPAY_WEBHOOK_SECRET"        flag:"arifpay-webhook-secret"        flagDesc:"Secret used to validate the signature on inbound ArifPay webhooks"`
	ArifPayCallbackURL   string `env:"ARIFPAY_CALLBACK_URL"          flag:"arifpay-callback-url"          flagDesc:"Override for the ArifPay webhook callback URL"`
	ArifPayReturnURL     string `env:"ARIFPAY_RETURN_URL"            flag:"arifpay-return-url"            flagDesc:"Override for the ArifPay browser return URL"`
	PaypalEnv            string `env:"PAYPAL_ENV"                    flag:"paypal-env"                    flagDesc:"PayPal environment, live or test"`
	PaypalClientID       string `env:"PAYPAL_CLIENT_ID"              flag:"paypal-client-id"              flagDesc:"Client ID used to authenticate API calls with PayPal"`
	PaypalSecret         string `env:"PAYPAL_SECRET"                 flag:"paypal-secret"                 flagDesc:"Secret used to authenticate API calls with PayPal"`
	SMTPHost             string `env:"SMTP_HOST"                     flag:"smtp-host"                     flagDesc:"SMTP server host for outbound mail"`
	SMTPPort             string `env:"SMTP_PORT"                     flag:"smtp-port"                     flagDesc:"SMTP server port"`
	SMTPUser             string `env:"SMTP_USER"                     flag:"smtp-user"                     flagDesc:"SMTP username, also used as the from address"`
	SMTPPassword         string `env:"SMTP_PASS"                     flag:"smtp-pass"                     flagDesc:"SMTP password"`
	AdminEmail           string `env:"ADMIN_EMAIL"                   flag:"admin-email"                   flagDesc:"Address usage reports are sent to"`
	AlertEmail           string `env:"ALERT_EMAIL"                   flag:"alert-email"                   flagDesc:"Address credential expiry alerts are sent to"`
	ExpiryAlertDays      string `env:"EXPIRY_ALERT_DAYS"             flag:"expiry-alert-days"             flagDesc:"Days before credential expiry at which alerts are sent"`
	CBEAPIKey            string `env:"CBE_API_KEY"                   flag:"cbe-api-key"                   flagDesc:"Commercial Bank of Ethiopia API key seed"`
	CBEAPISecret         string `env:"CBE_API_SECRET"                flag:"cbe-api-secret"                flagDesc:"Commercial Bank of Ethiopia API secret seed"`
	CBEMerchantID        string `env:"CBE_MERCHANT_ID"               flag:"cbe-merchant-id"               flagDesc:"Commercial Bank of Ethiopia merchant ID seed"`
	UBAPIKey             string `env:"UB_API_KEY"                    flag:"ub-api-key"                    flagDesc:"United Bank API key seed"`
	UBAPISecret          string `env:"UB_API_SECRET"                 flag:"ub-api-secret"                 flagDesc:"United Bank API secret seed"`
	UBMerchantID         string `env:"UB_MERCHANT_ID"                flag:"ub-merchant-id"                flagDesc:"United Bank merchant ID seed"`
	AwashAPIKey          string `env:"AWASH_API_KEY"                 flag:"awash-api-key"                 flagDesc:"Awash Bank API key seed"`
	AwashAPISecret       string `env:"AWASH_API_SECRET"              flag:"awash-api-secret"              flagDesc:"Awash Bank API secret seed"`
	AwashMerchantID      string `env:"AWASH_MERCHANT_ID"             flag:"awash-merchant-id"             flagDesc:"Awash Bank merchant ID seed"`
	DashenAPIKey         string `env:"DASHEN_API_KEY"                flag:"dashen-api-key"                flagDesc:"Dashen Bank API key seed"`
	DashenAPISecret      string `env:"DASHEN_API_SECRET"             flag:"dashen-api-secret"             flagDesc:"Dashen Bank API secret seed"`
	DashenMerchantID     string `env:"DASHEN_MERCHANT_ID"            flag:"dashen-merchant-id"            flagDesc:"Dashen Bank merchant ID seed"`
	BOAAPIKey            string `env:"BOA_API_KEY"                   flag:"boa-api-key"                   flagDesc:"Bank of Abyssinia API key seed"`
	BOAAPISecret         string `env:"BOA_API_SECRET"                flag:"boa-api-secret"                flagDesc:"Bank of Abyssinia API secret seed"`
	BOAMerchantID        string `env:"BOA_MERCHANT_ID"               flag:"boa-merchant-id"               flagDesc:"Bank of Abyssinia merchant ID seed"`
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:             ":5000",
		Environment:          "development",
		Database:             "donations",
		DonorsCollection:     "donors",
		MessagesCollection:   "messages",
		APIConfigsCollection: "apiconfigs",
		FrontendURL:          "https://gidf.org.et",
		BackendURL:           "http://localhost:5000",
		ChapaAPIURL:          "https://api.chapa.co/v1/transaction",
		ArifPayAPIURL:        "https://api.arifpay.com/v1/checkout/session",
		ArifPayFallbackURL:   "https://arifpay.com/v1/checkout/session",
		SMTPHost:             "smtp.gmail.com",
		SMTPPort:             "587",
		ExpiryAlertDays:      "7",
	}
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// AllowedOrigins returns the parsed CORS origin allow-list.
func (c *Config) AllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	origins := strings.Split(c.CORSAllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
