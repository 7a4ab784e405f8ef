package models

import (
	"errors"
	"fmt"
)

// ManifestFile is the fixed name of the manifest inside a batch directory.
const ManifestFile = "metadata.json"

// ErrCorruptManifest reports a manifest that cannot be trusted, either
// because it does not parse or because its total disagrees with the
// message list.
var ErrCorruptManifest = errors.New("corrupt manifest")

// Manifest records what a prepare run generated. It is the only link
// between the prepare and the send phase: send never re-reads the
// workbook.
type Manifest struct {
	BatchID      string    `json:"batchId"`
	CreatedAt    string    `json:"createdAt"`
	ContactEmail string    `json:"contactEmail"`
	ValueDate    string    `json:"valueDate"`
	UpdateDate   string    `json:"updateDate"`
	Messages     []Message `json:"messages"`
	Total        int       `json:"total"`
}

// Message is one manifest entry: the rendered document plus a snapshot
// of the recipient taken at prepare time. SentAt is stamped by the send
// phase after a successful delivery.
type Message struct {
	File    string          `json:"file"`
	Member  MemberSnapshot  `json:"member"`
	Mandate MandateSnapshot `json:"mandate"`
	Amounts AmountSnapshot  `json:"amounts"`
	SentAt  string          `json:"sentAt,omitempty"`
}

type MemberSnapshot struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type MandateSnapshot struct {
	Reference string `json:"reference"`
}

// AmountSnapshot fixes the billed amounts at prepare time as plain
// decimal strings, so the send preview can show them without re-reading
// the workbook.
type AmountSnapshot struct {
	Fee      string `json:"fee"`
	Donation string `json:"donation"`
	Total    string `json:"total"`
}

// Validate checks the total invariant. A manifest with zero messages is
// a valid empty batch.
func (m *Manifest) Validate() error {
	if len(m.Messages) != m.Total {
		return fmt.Errorf("%w: total is %d but manifest lists %d message(s)",
			ErrCorruptManifest, m.Total, len(m.Messages))
	}
	return nil
}
