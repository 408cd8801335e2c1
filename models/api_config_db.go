package models

import "time"

// APIConfigResourceDB is a bank API credential record stored in the DB
type APIConfigResourceDB struct {
	BankName         string     `bson:"_id"`
	APIEndpoint      string     `bson:"api_endpoint"`
	APIKey           string     `bson:"api_key"`
	APISecret        string     `bson:"api_secret"`
	MerchantID       string     `bson:"merchant_id"`
	ExpirationDate   time.Time  `bson:"expiration_date"`
	IsActive         bool       `bson:"is_active"`
	LastRenewalDate  time.Time  `bson:"last_renewal_date,omitempty"`
	RenewalAlertSent bool       `bson:"renewal_alert_sent"`
	UsageCount       int64      `bson:"usage_count"`
	LastUsedAt       *time.Time `bson:"last_used_at,omitempty"`
	CreatedAt        time.Time  `bson:"created_at,omitempty"`
	UpdatedAt        time.Time  `bson:"updated_at,omitempty"`
}

// APIConfigUpdate holds the allow-listed fields of a credential update.
// Pointer fields distinguish "not supplied" from zero values.
type APIConfigUpdate struct {
	APIEndpoint    string     `json:"apiEndpoint"`
	ExpirationDate *time.Time `json:"expirationDate"`
	IsActive       *bool      `json:"isActive"`
}

// APIConfigRenewal replaces the secret material of a credential record
type APIConfigRenewal struct {
	APIKey         string    `json:"apiKey"         validate:"required"`
	APISecret      string    `json:"apiSecret"      validate:"required"`
	MerchantID     string    `json:"merchantId"     validate:"required"`
	ExpirationDate time.Time `json:"expirationDate" validate:"required"`
}

// APIConfigStatsDB is the result of the usage statistics aggregation
type APIConfigStatsDB struct {
	TotalAPIs   int64 `bson:"total_apis"`
	ActiveAPIs  int64 `bson:"active_apis"`
	ExpiredAPIs int64 `bson:"expired_apis"`
	TotalUsage  int64 `bson:"total_usage"`
}
