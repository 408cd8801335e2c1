package transformers

import (
	"github.com/gidf/donations.api.gidf.org.et/models"
)

// MessageTransformer transforms contact message data between rest and database models
type MessageTransformer struct{}

// TransformToDB transforms a message rest model into a message database model
func (mt MessageTransformer) TransformToDB(rest models.MessageResourceRest) models.MessageResourceDB {
	return models.MessageResourceDB{
		ID:        rest.ID,
		Name:      rest.Name,
		Email:     rest.Email,
		Subject:   rest.Subject,
		Message:   rest.Message,
		CreatedAt: rest.CreatedAt,
	}
}

// TransformToRest transforms a message database model into a message rest model
func (mt MessageTransformer) TransformToRest(dbResource models.MessageResourceDB) models.MessageResourceRest {
	return models.MessageResourceRest{
		ID:        dbResource.ID,
		Name:      dbResource.Name,
		Email:     dbResource.Email,
		Subject:   dbResource.Subject,
		Message:   dbResource.Message,
		CreatedAt: dbResource.CreatedAt,
	}
}
