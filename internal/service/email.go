package service

import (
	"context"
	"fmt"
	"html"

	"dhara-backend/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// mailSender is satisfied by *sendgrid.Client.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client    mailSender
	fromEmail string
	fromName  string
}

// NewEmailService returns a SendGrid backed sender, or a sender that only logs
// when no API key is configured.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	if apiKey == "" {
		return logOnlyEmailService{}
	}
	return &sendGridEmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendBookingNotification(ctx context.Context, msg BookingEmail) error {
	if msg.OperatorEmail == "" {
		return invalidInput("operator email is required")
	}
	subject := fmt.Sprintf("New booking: %s", msg.AssetName)
	plain := fmt.Sprintf("Hello %s,\n\n%s booked your %s on %s at %s.\n\nThe Dhara Team",
		msg.OperatorName, msg.FarmerName, msg.AssetName, msg.Date, msg.Time)
	htmlBody := fmt.Sprintf("<p>Hello %s,</p><p><strong>%s</strong> booked your <strong>%s</strong> on %s at %s.</p><p>The Dhara Team</p>",
		html.EscapeString(msg.OperatorName), html.EscapeString(msg.FarmerName), html.EscapeString(msg.AssetName),
		html.EscapeString(msg.Date), html.EscapeString(msg.Time))

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.fromEmail),
		subject,
		mail.NewEmail(msg.OperatorName, msg.OperatorEmail),
		plain,
		htmlBody,
	)

	logger.ExternalServiceCall("sendgrid", "send", "to", msg.OperatorEmail)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", msg.OperatorEmail)
	if err != nil {
		return fmt.Errorf("failed to send booking email: %w", err)
	}
	return nil
}

type logOnlyEmailService struct{}

func (logOnlyEmailService) SendBookingNotification(ctx context.Context, msg BookingEmail) error {
	logger.InfoContext(ctx, "Email delivery disabled, skipping booking email", "to", msg.OperatorEmail, "asset", msg.AssetName)
	return nil
}
