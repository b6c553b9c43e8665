package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthsense/healthsense-ai/pkg/logging"
)

// BookingConfirmation carries the frozen confirmation of a completed booking.
type BookingConfirmation struct {
	ConfirmationID string
	ProviderName   string
	Specialty      string
	Hospital       string
	DateTime       string
	PatientName    string
	PatientEmail   string
	PatientPhone   string
}

// Service sends patient-facing notifications.
type Service struct {
	email  EmailSender
	logger *logging.Logger
}

// NewService creates a notification service. A nil sender disables email.
func NewService(email EmailSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, logger: logger}
}

// SendBookingConfirmation emails the patient their appointment details.
func (s *Service) SendBookingConfirmation(ctx context.Context, c BookingConfirmation) error {
	if s == nil || s.email == nil {
		return nil
	}
	if strings.TrimSpace(c.PatientEmail) == "" {
		s.logger.Debug("notify: no patient email, skipping confirmation", "confirmation_id", c.ConfirmationID)
		return nil
	}

	msg := EmailMessage{
		To:      c.PatientEmail,
		ToName:  c.PatientName,
		Subject: fmt.Sprintf("Appointment Confirmed - %s", c.ConfirmationID),
		Body:    bookingConfirmationBody(c),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: send booking confirmation: %w", err)
	}
	s.logger.Info("booking confirmation sent", "confirmation_id", c.ConfirmationID)
	return nil
}

func bookingConfirmationBody(c BookingConfirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", c.PatientName)
	b.WriteString("Your appointment has been successfully booked.\n\n")
	fmt.Fprintf(&b, "Confirmation ID: %s\n", c.ConfirmationID)
	fmt.Fprintf(&b, "Doctor: %s\n", c.ProviderName)
	if c.Specialty != "" {
		fmt.Fprintf(&b, "Specialty: %s\n", c.Specialty)
	}
	if c.Hospital != "" {
		fmt.Fprintf(&b, "Location: %s\n", c.Hospital)
	}
	fmt.Fprintf(&b, "Date & Time: %s\n", c.DateTime)
	fmt.Fprintf(&b, "Contact: %s • %s\n\n", c.PatientEmail, c.PatientPhone)
	b.WriteString("Please arrive 10 minutes early. Reply to this email if you need to reschedule.\n")
	return b.String()
}
