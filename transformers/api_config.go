package transformers

import (
	"math"
	"time"

	"github.com/gidf/donations.api.gidf.org.et/models"
)

// APIConfigTransformer transforms bank API credential data between rest and
// database models. Key and secret material never crosses into the rest model.
type APIConfigTransformer struct{}

// TransformToRest transforms a credential database model into its public rest
// model
func (at APIConfigTransformer) TransformToRest(dbResource models.APIConfigResourceDB) models.APIConfigResourceRest {
	apiConfigResource := models.APIConfigResourceRest{
		BankName:            dbResource.BankName,
		APIEndpoint:         dbResource.APIEndpoint,
		ExpirationDate:      dbResource.ExpirationDate,
		IsActive:            dbResource.IsActive,
		UsageCount:          dbResource.UsageCount,
		LastUsedAt:          dbResource.LastUsedAt,
		LastRenewalDate:     dbResource.LastRenewalDate,
		DaysUntilExpiration: daysUntil(dbResource.ExpirationDate),
	}
	return apiConfigResource
}

func daysUntil(t time.Time) int {
	days := math.Ceil(time.Until(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}
