// Package mail wraps the operator mailbox: SMTP for submission, IMAP
// for filing sent copies. Both sessions are opened once per run and
// released together.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/emersion/go-imap"
	imapclient "github.com/emersion/go-imap/client"
	gomail "github.com/wneessen/go-mail"
)

// SentMailbox is where delivered copies are appended.
const SentMailbox = "Sent"

// Account holds the credentials and endpoints of the operator mailbox.
type Account struct {
	User     string
	Password string
	IMAPHost string
	IMAPPort int
	SMTPHost string
	SMTPPort int
}

// Client bundles the two sessions. Release with Close on every exit
// path.
type Client struct {
	logger *log.Logger
	smtp   *gomail.Client
	imap   *imapclient.Client
}

// Open logs in to both servers over TLS. Any failure tears down
// whatever was already connected; a login failure here is fatal for the
// whole send run.
func Open(logger *log.Logger, account Account) (*Client, error) {
	imapConn, err := imapclient.DialTLS(fmt.Sprintf("%s:%d", account.IMAPHost, account.IMAPPort), nil)
	if err != nil {
		return nil, fmt.Errorf("imap connect failed: %w", err)
	}
	if err := imapConn.Login(account.User, account.Password); err != nil {
		imapConn.Logout()
		return nil, fmt.Errorf("imap login failed: %w", err)
	}

	smtpClient, err := gomail.NewClient(account.SMTPHost,
		gomail.WithPort(account.SMTPPort),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(account.User),
		gomail.WithPassword(account.Password),
	)
	if err != nil {
		imapConn.Logout()
		return nil, fmt.Errorf("smtp setup failed: %w", err)
	}
	if err := smtpClient.DialWithContext(context.Background()); err != nil {
		imapConn.Logout()
		return nil, fmt.Errorf("smtp login failed: %w", err)
	}

	return &Client{logger: logger, smtp: smtpClient, imap: imapConn}, nil
}

// Send submits the message and appends a \Seen copy to the Sent
// mailbox. A failed append is reported but not an error: the message
// already left.
func (c *Client) Send(m Message) error {
	msg, err := m.mime()
	if err != nil {
		return err
	}
	if err := c.smtp.Send(msg); err != nil {
		return fmt.Errorf("delivery to %s failed: %w", m.Recipient, err)
	}

	raw, err := m.Raw()
	if err != nil {
		c.logger.Warn("failed to encode sent copy", "recipient", m.Recipient, "error", err)
		return nil
	}
	if err := c.imap.Append(SentMailbox, []string{imap.SeenFlag}, time.Now(), bytes.NewBuffer(raw)); err != nil {
		c.logger.Warn("failed to append sent copy", "recipient", m.Recipient, "error", err)
	}
	return nil
}

// Close releases both sessions.
func (c *Client) Close() {
	if err := c.smtp.Close(); err != nil {
		c.logger.Debug("smtp close", "error", err)
	}
	if err := c.imap.Logout(); err != nil {
		c.logger.Debug("imap logout", "error", err)
	}
}
