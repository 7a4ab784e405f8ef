package mail

import (
	"bytes"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Message is one outbound notification, fully composed from the
// manifest snapshot and the stored document.
type Message struct {
	Sender    string
	Recipient string
	Subject   string
	Body      string // HTML
}

func (m Message) mime() (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(m.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.Sender, err)
	}
	if err := msg.To(m.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", m.Recipient, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, m.Body)
	return msg, nil
}

// Raw returns the encoded RFC 5322 form used for the IMAP Sent append.
func (m Message) Raw() ([]byte, error) {
	msg, err := m.mime()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
