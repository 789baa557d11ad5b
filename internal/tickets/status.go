package tickets

import (
	"time"

	"github.com/dmejiasc/comandas-backend/pkg/db/models"
	"github.com/dmejiasc/comandas-backend/pkg/enums"
)

// DeriveTicketStatus computes a ticket's status from its full item set. The
// ticket never holds independent state; this is the only source of truth.
//
// Priority order matters: canceled items count as closed when deciding
// ready/partial, and in_prep only wins when nothing has been delivered yet.
func DeriveTicketStatus(items []models.TicketItem) enums.TicketStatus {
	if len(items) == 0 {
		return enums.TicketStatusPending
	}

	total := len(items)
	canceled := 0
	delivered := 0
	inPrep := 0
	for _, item := range items {
		switch item.Status {
		case enums.ItemStatusCanceled:
			canceled++
		case enums.ItemStatusDelivered:
			delivered++
		case enums.ItemStatusInPrep:
			inPrep++
		}
	}

	switch {
	case canceled == total:
		return enums.TicketStatusCanceled
	case delivered+canceled == total:
		return enums.TicketStatusReady
	case delivered > 0:
		return enums.TicketStatusPartial
	case inPrep > 0:
		return enums.TicketStatusInPrep
	default:
		return enums.TicketStatusPending
	}
}

// stampOnce returns now for an unset timestamp and the existing value
// otherwise. Lifecycle timestamps record the first occurrence only.
func stampOnce(existing *time.Time, now time.Time) *time.Time {
	if existing != nil {
		return existing
	}
	stamp := now
	return &stamp
}

// ticketTimestampUpdates produces the guarded column writes for a ticket
// reaching newStatus. Both the item update and cancel paths share it so the
// ready_at guard cannot drift between them.
func ticketTimestampUpdates(ticket *models.Ticket, newStatus enums.TicketStatus, now time.Time) map[string]any {
	updates := map[string]any{}
	switch newStatus {
	case enums.TicketStatusInPrep, enums.TicketStatusPartial:
		if ticket.PrepStartedAt == nil {
			updates["prep_started_at"] = now
		}
	case enums.TicketStatusReady:
		if ticket.ReadyAt == nil {
			updates["ready_at"] = now
		}
	}
	return updates
}
