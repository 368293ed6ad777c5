// Package email implements the transactional email boundary over the
// studio's SMTP relay.
package email

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/studioforma/atelier/internal/config"
	"github.com/studioforma/atelier/internal/usecase"
)

// smtpDialer opens a connection to the relay. gomail.Dialer satisfies it.
type smtpDialer interface {
	Dial() (gomail.SendCloser, error)
}

// Client sends messages through the configured SMTP relay. It implements
// usecase.EmailSender.
type Client struct {
	dialer    smtpDialer
	fromEmail string
	fromName  string
	logger    *zap.Logger
}

// NewClient creates a new email client.
func NewClient(cfg *config.EmailConfig, logger *zap.Logger) *Client {
	return &Client{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send delivers one message with plain text and HTML alternatives. The
// caller decides whether a failure is hard or soft.
func (c *Client) Send(ctx context.Context, msg usecase.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(c.fromEmail, c.fromName))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)

	// Plain text first so HTML-capable clients prefer the alternative.
	switch {
	case msg.Text != "" && msg.HTML != "":
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		m.SetBody("text/html", msg.HTML)
	default:
		m.SetBody("text/plain", msg.Text)
	}

	sender, err := c.dialer.Dial()
	if err != nil {
		return fmt.Errorf("failed to dial smtp relay: %w", err)
	}
	defer sender.Close()

	if err := gomail.Send(sender, m); err != nil {
		c.logger.Warn("SMTP relay rejected message",
			zap.String("recipient", msg.To),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
