package models

import "time"

// APIConfigResourceRest is public facing credential details. Key and secret
// material is never serialized.
type APIConfigResourceRest struct {
	BankName            string     `json:"bankName"`
	APIEndpoint         string     `json:"apiEndpoint"`
	ExpirationDate      time.Time  `json:"expirationDate"`
	IsActive            bool       `json:"isActive"`
	UsageCount          int64      `json:"usageCount"`
	LastUsedAt          *time.Time `json:"lastUsedAt,omitempty"`
	LastRenewalDate     time.Time  `json:"lastRenewalDate,omitempty"`
	DaysUntilExpiration int        `json:"daysUntilExpiration"`
}

// APIConfigStatsRest is the usage statistics report returned by the
// api-management stats endpoint and mailed in the weekly report
type APIConfigStatsRest struct {
	TotalAPIs           int64                   `json:"totalApis"`
	ActiveAPIs          int64                   `json:"activeApis"`
	ExpiredAPIs         int64                   `json:"expiredApis"`
	TotalUsage          int64                   `json:"totalUsage"`
	ExpiringSoon        int                     `json:"expiringSoon"`
	ExpiringSoonDetails []APIConfigResourceRest `json:"expiringSoonDetails"`
}
