package notify

import (
	"context"
	"fmt"
	"time"

	"carsharing-backend/internal/config"
	"carsharing-backend/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// OverdueReminder is what a user is told about one late rental.
type OverdueReminder struct {
	RentalID   int32
	Email      string
	UserName   string
	CarBrand   string
	CarModel   string
	ReturnDate time.Time
}

// Notifier delivers reminders to users.
type Notifier interface {
	SendOverdueReminder(ctx context.Context, r OverdueReminder) error
}

// New picks SendGrid when an API key is configured and falls back to logging.
func New(cfg config.EmailConfig) Notifier {
	if cfg.SendGridAPIKey == "" {
		return LogNotifier{}
	}
	return NewSendGridNotifier(cfg.SendGridAPIKey, cfg.From, cfg.FromName)
}

type mailClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type SendGridNotifier struct {
	client    mailClient
	fromEmail string
	fromName  string
}

func NewSendGridNotifier(apiKey, fromEmail, fromName string) *SendGridNotifier {
	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SendGridNotifier) SendOverdueReminder(ctx context.Context, r OverdueReminder) error {
	subject, plainText, htmlContent := renderOverdueReminder(r)
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(r.UserName, r.Email)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "Send", "rentalID", r.RentalID)
	response, err := s.client.Send(message)
	if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "Send", nil, "status", response.StatusCode)
	return nil
}

// LogNotifier only logs reminders. Used when no mail provider is configured.
type LogNotifier struct{}

func (LogNotifier) SendOverdueReminder(ctx context.Context, r OverdueReminder) error {
	logger.InfoContext(ctx, "Overdue reminder (not sent, no mail provider)",
		"rentalID", r.RentalID, "email", r.Email, "returnDate", r.ReturnDate.Format(time.RFC3339))
	return nil
}

func renderOverdueReminder(r OverdueReminder) (subject, plainText, htmlContent string) {
	car := "your car"
	if r.CarBrand != "" || r.CarModel != "" {
		car = fmt.Sprintf("the %s %s", r.CarBrand, r.CarModel)
	}
	due := r.ReturnDate.UTC().Format("2006-01-02 15:04 UTC")
	name := r.UserName
	if name == "" {
		name = "there"
	}

	subject = fmt.Sprintf("Rental #%d is overdue", r.RentalID)
	plainText = fmt.Sprintf("Hello %s,\n\nYou were due to return %s on %s. Please return it as soon as possible.\n\nThe Car Sharing Team", name, car, due)
	htmlContent = fmt.Sprintf(`
		<html>
			<body>
				<h2>Rental #%d is overdue</h2>
				<p>Hello %s, you were due to return <strong>%s</strong> on %s.</p>
				<p>Please return it as soon as possible.</p>
			</body>
		</html>
	`, r.RentalID, name, car, due)
	return subject, plainText, htmlContent
}
