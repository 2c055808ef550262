package notification

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"github.com/fai-quant/overnight-signal/src/models"
)

// EmailChannel submits the signal over SMTP with mandatory STARTTLS.
type EmailChannel struct{}

func NewEmailChannel() *EmailChannel {
	return &EmailChannel{}
}

func (c *EmailChannel) Name() string {
	return "email"
}

func (c *EmailChannel) Format(signal models.Signal) Message {
	return FormatSignal(signal)
}

func (c *EmailChannel) Send(ctx context.Context, signal models.Signal, creds models.CredentialSet) models.NotificationResult {
	msg := c.Format(signal)

	if err := c.deliver(ctx, msg, creds); err != nil {
		return models.NotificationResult{Channel: c.Name(), Err: err}
	}

	log.WithFields(log.Fields{
		"signal_id": signal.ID,
		"to":        creds.EmailTo,
	}).Info("email delivered")

	return models.NotificationResult{Delivered: true, Channel: c.Name()}
}

func (c *EmailChannel) deliver(ctx context.Context, msg Message, creds models.CredentialSet) error {
	m := mail.NewMsg()

	if err := m.FromFormat(creds.FromName, creds.SMTPUser); err != nil {
		return &models.DeliveryError{Channel: c.Name(), Detail: "invalid sender address", Err: err}
	}

	if err := m.To(creds.EmailTo); err != nil {
		return &models.DeliveryError{Channel: c.Name(), Detail: "invalid recipient address", Err: err}
	}

	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	client, err := mail.NewClient(creds.SMTPHost,
		mail.WithPort(creds.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(creds.SMTPUser),
		mail.WithPassword(creds.SMTPPass),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(deliveryTimeout),
	)
	if err != nil {
		return &models.DeliveryError{Channel: c.Name(), Detail: "smtp client setup", Err: err}
	}

	// DialAndSendWithContext closes the SMTP session on every exit path,
	// including mid-send failures.
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return &models.DeliveryError{Channel: c.Name(), Detail: "smtp session", Err: err}
	}

	return nil
}
