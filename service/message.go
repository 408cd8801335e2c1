package service

import (
	"fmt"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/dao"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/gidf/donations.api.gidf.org.et/transformers"
	validator "gopkg.in/go-playground/validator.v9"
)

// MessageService contains the DAO for db access and the notification outbox
// used to acknowledge contact-form submissions
type MessageService struct {
	DAO    dao.DAO
	Config *config.Config
	Outbox *NotificationOutbox
}

// CreateMessage validates and records a contact-form submission, then queues
// an acknowledgment email for the sender and a notification for the admin.
// Email failures never fail the submission.
func (service *MessageService) CreateMessage(incomingMessageRequest *models.IncomingMessageRequest) (*models.MessageResourceRest, ResponseType, error) {
	validate := validator.New()
	err := validate.Struct(incomingMessageRequest)
	if err != nil {
		return nil, InvalidData, fmt.Errorf("invalid incoming message: [%v]", err)
	}

	if !emailRegex.MatchString(incomingMessageRequest.Email) {
		return nil, InvalidData, fmt.Errorf("invalid email address: [%s]", incomingMessageRequest.Email)
	}

	messageResource := &models.MessageResourceRest{
		ID:        generateID(),
		Name:      incomingMessageRequest.Name,
		Email:     incomingMessageRequest.Email,
		Subject:   incomingMessageRequest.Subject,
		Message:   incomingMessageRequest.Message,
		CreatedAt: time.Now(),
	}

	messageResourceDB := transformers.MessageTransformer{}.TransformToDB(*messageResource)
	err = service.DAO.CreateMessageResource(&messageResourceDB)
	if err != nil {
		return nil, Error, fmt.Errorf("error writing message record to the datastore: [%v]", err)
	}

	log.Info("contact message created", log.Data{"message_id": messageResource.ID, "subject": messageResource.Subject})

	service.Outbox.EnqueueMessageAcknowledgment(messageResource)
	service.Outbox.EnqueueAdminMessageNotification(messageResource, service.adminRecipient())

	return messageResource, Success, nil
}

// GetMessages returns all contact messages, newest first
func (service *MessageService) GetMessages() ([]models.MessageResourceRest, ResponseType, error) {
	messageResources, err := service.DAO.ListMessageResources()
	if err != nil {
		return nil, Error, fmt.Errorf("error listing message records: [%v]", err)
	}

	messages := make([]models.MessageResourceRest, 0, len(messageResources))
	for _, messageResourceDB := range messageResources {
		messages = append(messages, transformers.MessageTransformer{}.TransformToRest(messageResourceDB))
	}

	return messages, Success, nil
}

func (service *MessageService) adminRecipient() string {
	if service.Config.AdminEmail != "" {
		return service.Config.AdminEmail
	}
	return service.Config.SMTPUser
}
