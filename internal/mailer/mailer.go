package mailer

import (
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/fleetworks/carrental-backend/booking"
	"github.com/fleetworks/carrental-backend/rental"
)

// Mailer sends transactional mail through SendGrid. A zero API key disables
// sending; calls become logged no-ops so local setups work without a key.
type Mailer struct {
	apiKey    string
	fromEmail string
	fromName  string
	logger    *slog.Logger
}

func New(apiKey, fromEmail, fromName string, logger *slog.Logger) *Mailer {
	return &Mailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		logger:    logger,
	}
}

// SendBookingConfirmation mails the customer their booking summary. Callers
// run this in a goroutine; failures are logged, never surfaced to the
// request.
func (m *Mailer) SendBookingConfirmation(toEmail string, b booking.Detail) error {
	if m.apiKey == "" {
		m.logger.Info("sendgrid disabled, skipping confirmation mail", "bookingId", b.ID)
		return nil
	}

	subject := fmt.Sprintf("Booking #%d confirmed", b.ID)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour %s is booked from %s to %s. Total: %s.\n",
		b.FirstName,
		b.CarModel,
		b.RentalStart.Format(rental.DateFormat),
		b.RentalEnd.Format(rental.DateFormat),
		b.TotalAmount,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your <strong>%s</strong> is booked from %s to %s.</p><p>Total: %s</p>",
		b.FirstName,
		b.CarModel,
		b.RentalStart.Format(rental.DateFormat),
		b.RentalEnd.Format(rental.DateFormat),
		b.TotalAmount,
	)

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(b.FirstName+" "+b.LastName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sending confirmation mail: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	m.logger.Info("confirmation mail sent", "bookingId", b.ID, "status", response.StatusCode)
	return nil
}
