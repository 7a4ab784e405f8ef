package billing

import (
	"github.com/charmbracelet/log"

	"github.com/feenotify/feenotify/pkg/models"
)

// DefaultStatuses is the allow-list of member statuses that get billed.
// Members with any other status are excluded from the run entirely.
var DefaultStatuses = []string{"Aktiv", "Passiv", "Inaktiv"}

// BuildPayments joins members, fees and mandates by member id. The
// filtered member set defines the universe of keys: fee and mandate rows
// pointing at unknown or excluded members are dropped with a debug log.
// The result preserves the member sheet order.
func BuildPayments(logger *log.Logger, members []models.Member, fees []models.Fee, mandates []models.Mandate, statuses []string) []*models.Payment {
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}

	payments := make([]*models.Payment, 0, len(members))
	byID := make(map[int]*models.Payment, len(members))
	for _, m := range members {
		if !allowed[m.Status] {
			continue
		}
		p := &models.Payment{Member: m}
		payments = append(payments, p)
		byID[m.ID] = p
	}

	for i := range fees {
		fee := fees[i]
		p, ok := byID[fee.MemberID]
		if !ok {
			logger.Debug("dropping fee for unknown or unbilled member", "member_id", fee.MemberID)
			continue
		}
		p.Fee = &fee
	}

	for i := range mandates {
		mandate := mandates[i]
		p, ok := byID[mandate.MemberID]
		if !ok {
			logger.Debug("dropping mandate for unknown or unbilled member", "member_id", mandate.MemberID)
			continue
		}
		p.Mandate = &mandate
	}

	return payments
}
