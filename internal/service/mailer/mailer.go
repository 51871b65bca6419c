package mailer

import (
	"StaffGate/internal/config"
	"StaffGate/internal/lib/sl"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Service delivers confirmation codes over SMTP. A returned error means
// the code was not sent and the dialogue must not advance.
type Service struct {
	host     string
	port     string
	username string
	password string
	from     string
	log      *slog.Logger
}

func NewMailerService(conf *config.Config, logger *slog.Logger) *Service {
	return &Service{
		host:     conf.Smtp.Host,
		port:     conf.Smtp.Port,
		username: conf.Smtp.Username,
		password: conf.Smtp.Password,
		from:     conf.Smtp.From,
		log:      logger.With(sl.Module("mailer")),
	}
}

// SendConfirmationCode emails the registration confirmation code to the
// given address.
func (s *Service) SendConfirmationCode(to, code string) error {
	if s.host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Confirmation code\r\n\r\n"+
		"Your confirmation code is: %s\r\n", s.from, to, code)

	addr := s.host + ":" + s.port
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(body)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}

	s.log.Debug("confirmation code sent", slog.String("to", to))
	return nil
}
