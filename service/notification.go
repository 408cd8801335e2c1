package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/models"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends a single email
type Mailer interface {
	Send(to, subject, body string) error
}

// GomailSender is a Mailer backed by an SMTP server
type GomailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

// NewGomailSender builds a GomailSender from service configuration
func NewGomailSender(cfg *config.Config) (*GomailSender, error) {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port [%s]: [%v]", cfg.SMTPPort, err)
	}
	return &GomailSender{
		Host:     cfg.SMTPHost,
		Port:     port,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
	}, nil
}

// Send delivers one email over SMTP
func (s *GomailSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending mail to [%s]: [%v]", to, err)
	}
	return nil
}

// Notification is one outbound email waiting in the outbox
type Notification struct {
	To      string
	Subject string
	Body    string
}

// NotificationOutbox decouples email delivery from request handling. Requests
// enqueue notifications without blocking and a background worker delivers
// them with retries.
type NotificationOutbox struct {
	mailer Mailer
	queue  chan Notification

	retryAttempts int
	retryBase     time.Duration
}

// NewNotificationOutbox returns an outbox holding up to size undelivered
// notifications
func NewNotificationOutbox(mailer Mailer, size int) *NotificationOutbox {
	return &NotificationOutbox{
		mailer:        mailer,
		queue:         make(chan Notification, size),
		retryAttempts: 3,
		retryBase:     time.Second,
	}
}

// Enqueue adds a notification to the outbox. A full outbox drops the
// notification rather than blocking the caller.
func (o *NotificationOutbox) Enqueue(n Notification) {
	select {
	case o.queue <- n:
	default:
		log.Error(fmt.Errorf("notification outbox full, dropping mail to [%s] with subject [%s]", n.To, n.Subject))
	}
}

// EnqueueThankYou queues the donation confirmation email for a donor
func (o *NotificationOutbox) EnqueueThankYou(donor *models.DonorResourceRest) {
	o.Enqueue(Notification{
		To:      donor.Email,
		Subject: "Thank you for your donation",
		Body: fmt.Sprintf(
			"<p>Dear %s,</p>"+
				"<p>Thank you for your generous donation of %s ETB to the Great Islamic Dawah Foundation.</p>"+
				"<p>Transaction reference: %s</p>"+
				"<p>May your contribution be rewarded.</p>",
			donor.Name, donor.Amount, donor.TransactionID),
	})
}

// EnqueueMessageAcknowledgment queues the receipt email for a contact-form
// sender
func (o *NotificationOutbox) EnqueueMessageAcknowledgment(message *models.MessageResourceRest) {
	o.Enqueue(Notification{
		To:      message.Email,
		Subject: "We Received Your Message",
		Body: fmt.Sprintf(
			"<p>Dear %s,</p>"+
				"<p>Thank you for contacting us. We have received your message regarding \"%s\".</p>"+
				"<p>Our team will review your inquiry and get back to you as soon as possible.</p>"+
				"<p>Best regards,<br>Glory Integrated Development Foundation Team</p>",
			message.Name, message.Subject),
	})
}

// EnqueueAdminMessageNotification queues the admin copy of a contact-form
// submission
func (o *NotificationOutbox) EnqueueAdminMessageNotification(message *models.MessageResourceRest, adminEmail string) {
	o.Enqueue(Notification{
		To:      adminEmail,
		Subject: fmt.Sprintf("New Contact Form Submission: %s", message.Subject),
		Body: fmt.Sprintf(
			"<p>New message from %s (%s):</p>"+
				"<p>Subject: %s</p>"+
				"<p>%s</p>",
			message.Name, message.Email, message.Subject, message.Message),
	})
}

// Run delivers queued notifications until the context is cancelled. Each
// notification is attempted a fixed number of times with exponential backoff
// before being dropped.
func (o *NotificationOutbox) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-o.queue:
			o.deliver(ctx, n)
		}
	}
}

func (o *NotificationOutbox) deliver(ctx context.Context, n Notification) {
	backoff := o.retryBase
	for attempt := 1; attempt <= o.retryAttempts; attempt++ {
		err := o.mailer.Send(n.To, n.Subject, n.Body)
		if err == nil {
			log.Info("notification delivered", log.Data{"to": n.To, "subject": n.Subject, "attempt": attempt})
			return
		}
		log.Error(fmt.Errorf("error delivering notification to [%s] on attempt [%d]: [%v]", n.To, attempt, err))

		if attempt == o.retryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	log.Error(fmt.Errorf("dropping notification to [%s] with subject [%s] after [%d] attempts", n.To, n.Subject, o.retryAttempts))
}
