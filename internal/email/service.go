package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/pkg/logger"
)

// Service sends customer-facing booking mail. Only the confirmation path
// belongs to the scheduler; account mail lives with the auth surface.
type Service interface {
	SendBookingConfirmation(ctx context.Context, apt *model.Appointment, serviceName string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	logger *logger.Logger
}

func NewService(cfg Config, log *logger.Logger) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: log,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, apt *model.Appointment, serviceName string) error {
	if apt.Email == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", apt.Email)
	m.SetHeader("Subject", "Your appointment is booked")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour %s appointment is booked for %s at %s.\n\nSee you soon!",
		apt.FirstName, serviceName, apt.Date, apt.Time,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}
	return nil
}

// NewNoopService returns a sender that only logs, for environments without
// SMTP credentials.
func NewNoopService(log *logger.Logger) Service {
	return &noopService{logger: log}
}

type noopService struct {
	logger *logger.Logger
}

func (s *noopService) SendBookingConfirmation(_ context.Context, apt *model.Appointment, serviceName string) error {
	s.logger.Debug("skipping booking confirmation mail", "to", apt.Email, "service", serviceName)
	return nil
}
