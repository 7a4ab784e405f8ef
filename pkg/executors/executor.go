package executors

import (
	"github.com/charmbracelet/log"

	"github.com/feenotify/feenotify/pkg/config"
	"github.com/feenotify/feenotify/pkg/mail"
)

// Transport delivers one composed message. Production wires pkg/mail;
// tests substitute a recorder.
type Transport interface {
	Send(m mail.Message) error
	Close()
}

// Dialer opens a transport session for the operator account. The send
// routine calls it once, after the confirmation gate.
type Dialer func(account mail.Account) (Transport, error)

// Confirm answers the go/no-go question before any delivery. Production
// supplies a terminal prompt; tests a fixed answer. The send routine
// never touches stdin itself.
type Confirm func(prompt string) (bool, error)

// Executor runs the top-level routines with its collaborators injected.
type Executor struct {
	logger  *log.Logger
	config  *config.Config
	dial    Dialer
	confirm Confirm
}

func New(logger *log.Logger, cfg *config.Config, dial Dialer, confirm Confirm) *Executor {
	return &Executor{logger: logger, config: cfg, dial: dial, confirm: confirm}
}

// MailDialer opens the production SMTP/IMAP session.
func MailDialer(logger *log.Logger) Dialer {
	return func(account mail.Account) (Transport, error) {
		return mail.Open(logger, account)
	}
}
