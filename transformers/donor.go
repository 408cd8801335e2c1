package transformers

import (
	"github.com/gidf/donations.api.gidf.org.et/models"
)

// Transformer is an interface for all transformer implementations to implement
type Transformer interface {
	TransformToDB(interface{}) interface{}
	TransformToRest(interface{}) interface{}
}

// DonorTransformer transforms donor resource data between rest and database models
type DonorTransformer struct{}

// TransformToDB transforms donor resource rest model into donor resource database model
func (dt DonorTransformer) TransformToDB(rest models.DonorResourceRest) models.DonorResourceDB {
	donorResourceData := models.DonorResourceDataDB{
		Name:          rest.Name,
		Email:         rest.Email,
		Amount:        rest.Amount,
		PaymentType:   rest.PaymentType,
		IsCompany:     rest.IsCompany,
		CompanyName:   rest.CompanyName,
		PaymentMethod: rest.PaymentMethod,
		Status:        rest.Status,
		TransactionID: rest.TransactionID,
		CreatedAt:     rest.CreatedAt,
		CompletedAt:   rest.CompletedAt,
	}

	donorResource := models.DonorResourceDB{
		ID:          rest.ID,
		TxRef:       rest.TxRef,
		CheckoutURL: rest.CheckoutURL,
		Data:        donorResourceData,
	}

	return donorResource
}

// TransformToRest transforms donor resource database model into donor resource rest model
func (dt DonorTransformer) TransformToRest(dbResource models.DonorResourceDB) models.DonorResourceRest {
	donorResource := models.DonorResourceRest{
		ID:            dbResource.ID,
		Name:          dbResource.Data.Name,
		Email:         dbResource.Data.Email,
		Amount:        dbResource.Data.Amount,
		PaymentType:   dbResource.Data.PaymentType,
		IsCompany:     dbResource.Data.IsCompany,
		CompanyName:   dbResource.Data.CompanyName,
		PaymentMethod: dbResource.Data.PaymentMethod,
		Status:        dbResource.Data.Status,
		TransactionID: dbResource.Data.TransactionID,
		TxRef:         dbResource.TxRef,
		CheckoutURL:   dbResource.CheckoutURL,
		CreatedAt:     dbResource.Data.CreatedAt,
		CompletedAt:   dbResource.Data.CompletedAt,
	}
	return donorResource
}
