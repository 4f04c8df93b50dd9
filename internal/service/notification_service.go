package service

import (
	"time"

	"trustdesk/internal/models"
	"trustdesk/internal/repository"

	"github.com/sirupsen/logrus"
)

type EmailTemplate struct {
	Subject string
	HTML    string
	Text    string
}

var (
	TemplatePaymentSuccessful = EmailTemplate{
		Subject: "Payment Successful",
		HTML:    "<h1>Your payment was successful!</h1>",
		Text:    "Your payment was successful!",
	}
	TemplatePaymentIntentSucceeded = EmailTemplate{
		Subject: "Payment Intent Succeeded",
		HTML:    "<h1>Your payment intent succeeded!</h1>",
		Text:    "Your payment intent succeeded!",
	}
	TemplateSubscriptionCreated = EmailTemplate{
		Subject: "Subscription Created",
		HTML:    "<h1>Your subscription has been created!</h1>",
		Text:    "Your subscription has been created!",
	}
)

// Mailer delivers one email. Implementations are expected to be best-effort;
// callers never retry.
type Mailer interface {
	Send(to string, tpl EmailTemplate) error
}

// LogMailer stands in for a real delivery channel in development.
type LogMailer struct{}

func (LogMailer) Send(to string, tpl EmailTemplate) error {
	logrus.WithFields(logrus.Fields{"to": to, "subject": tpl.Subject}).Info("email sent")
	return nil
}

// NotificationService records each outbound notification and hands it to the
// mailer. It is invoked only after the state it reports on has been committed.
type NotificationService struct {
	repo   *repository.NotificationRepository
	mailer Mailer
}

func NewNotificationService(repo *repository.NotificationRepository, mailer Mailer) *NotificationService {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &NotificationService{repo: repo, mailer: mailer}
}

func (s *NotificationService) Notify(recipient string, tpl EmailTemplate) error {
	if recipient == "" {
		logrus.WithField("subject", tpl.Subject).Debug("notification skipped, empty recipient")
		return nil
	}
	now := time.Now()
	if s.repo != nil {
		if err := s.repo.Create(&models.Notification{
			Recipient: recipient,
			Subject:   tpl.Subject,
			Body:      tpl.Text,
			SentAt:    &now,
		}); err != nil {
			return err
		}
	}
	return s.mailer.Send(recipient, tpl)
}
