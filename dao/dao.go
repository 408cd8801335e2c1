package dao

import (
	"context"

	"github.com/gidf/donations.api.gidf.org.et/models"
)

// DAO is an interface for accessing donor, contact message and bank API
// credential resources from a backend store
type DAO interface {
	// CreateDonorResource writes a new donor record
	CreateDonorResource(donor *models.DonorResourceDB) error
	// GetDonorResource returns the donor record with the given id, or nil if
	// it does not exist
	GetDonorResource(id string) (*models.DonorResourceDB, error)
	// GetDonorResourceByReference returns the donor record correlated with
	// the given checkout reference, or nil if none exists
	GetDonorResourceByReference(txRef string) (*models.DonorResourceDB, error)
	// ListDonorResources returns donor records matching the filter, newest
	// first. An empty filter returns all records.
	ListDonorResources(filter models.DonorFilter) ([]models.DonorResourceDB, error)
	// PatchDonorResourceStatus moves a pending donor record to the given
	// terminal status. The update is conditional on the stored status still
	// being pending, so completed and failed records are never overwritten.
	// Returns whether the update was applied.
	PatchDonorResourceStatus(id, status, transactionID string) (bool, error)

	// CreateMessageResource writes a new contact message record
	CreateMessageResource(message *models.MessageResourceDB) error
	// ListMessageResources returns all contact message records, newest first
	ListMessageResources() ([]models.MessageResourceDB, error)

	// CreateAPIConfig writes a new bank API credential record
	CreateAPIConfig(apiConfig *models.APIConfigResourceDB) error
	// GetAPIConfig returns the credential record for the bank regardless of
	// state, or nil if none exists
	GetAPIConfig(bankName string) (*models.APIConfigResourceDB, error)
	// GetActiveAPIConfig returns the credential record for the bank only if
	// it is active and unexpired, or nil
	GetActiveAPIConfig(bankName string) (*models.APIConfigResourceDB, error)
	// IncrementAPIConfigUsage bumps the usage counter and last-used time
	IncrementAPIConfigUsage(bankName string) error
	// UpdateAPIConfig applies the allow-listed update fields. Returns whether
	// a record was matched.
	UpdateAPIConfig(bankName string, update *models.APIConfigUpdate) (bool, error)
	// RenewAPIConfig replaces credential material, stamps the renewal date
	// and clears the alert debounce flag. Returns whether a record was
	// matched.
	RenewAPIConfig(bankName string, renewal *models.APIConfigRenewal) (bool, error)
	// GetActiveAPIConfigs returns all active, unexpired credential records
	GetActiveAPIConfigs() ([]models.APIConfigResourceDB, error)
	// GetExpiringAPIConfigs returns active records expiring within the given
	// number of days
	GetExpiringAPIConfigs(days int) ([]models.APIConfigResourceDB, error)
	// MarkRenewalAlertSent sets the alert debounce flag
	MarkRenewalAlertSent(bankName string) error
	// GetAPIConfigStats aggregates registry-wide usage statistics
	GetAPIConfigStats() (*models.APIConfigStatsDB, error)

	// Ping checks store connectivity
	Ping(ctx context.Context) error
	// Close drains the store connection
	Close(ctx context.Context) error
}
