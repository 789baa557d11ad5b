package tickets

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmejiasc/comandas-backend/pkg/db/models"
	"github.com/dmejiasc/comandas-backend/pkg/enums"
	"github.com/dmejiasc/comandas-backend/pkg/types"
)

const (
	defaultListLimit = 200
	maxListLimit     = 1000
)

// ListFilters describe the inputs supported by the ticket board list.
type ListFilters struct {
	Status *enums.TicketStatus
	Query  string
	Limit  int
}

// EffectiveLimit clamps the requested page size into the supported range.
func (f ListFilters) EffectiveLimit() int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	if f.Limit > maxListLimit {
		return maxListLimit
	}
	return f.Limit
}

// UpdateItemStatusInput carries an item transition request.
type UpdateItemStatusInput struct {
	TicketID  uuid.UUID
	ItemID    uuid.UUID
	Status    enums.ItemStatus
	ActorName *string
}

// CancelItemInput carries an item cancellation. Reason is mandatory.
type CancelItemInput struct {
	TicketID  uuid.UUID
	ItemID    uuid.UUID
	Reason    string
	ActorName *string
}

// ReplaceItemInput records a substitution note on an item.
type ReplaceItemInput struct {
	TicketID       uuid.UUID
	ItemID         uuid.UUID
	NewProductName string
	Reason         string
	ActorName      *string
}

// PrintTicketInput carries a receipt render request.
type PrintTicketInput struct {
	TicketID  uuid.UUID
	WidthMM   int
	ActorName *string
}

// TicketSummary is the card-level shape returned by the board list.
type TicketSummary struct {
	ID            uuid.UUID          `json:"id"`
	TableRef      *string            `json:"table_ref,omitempty"`
	WaiterName    *string            `json:"waiter_name,omitempty"`
	SeqNumber     *int               `json:"seq_number,omitempty"`
	TicketNumber  *int64             `json:"ticket_number,omitempty"`
	Status        enums.TicketStatus `json:"status"`
	OrderedAt     time.Time          `json:"ordered_at"`
	PrepStartedAt *time.Time         `json:"prep_started_at,omitempty"`
	ReadyAt       *time.Time         `json:"ready_at,omitempty"`
}

// TicketWithItems is the detail shape: the card plus notes and the item set.
type TicketWithItems struct {
	TicketSummary
	Notes *string            `json:"notes,omitempty"`
	Items []TicketItemDetail `json:"items"`
}

// TicketItemDetail exposes one product line, including the lifecycle
// timestamps and the substitution annotations.
type TicketItemDetail struct {
	ID            uuid.UUID        `json:"id"`
	LineRef       int              `json:"line_ref"`
	ProductName   *string          `json:"product_name,omitempty"`
	Qty           float64          `json:"qty"`
	Unit          *string          `json:"unit,omitempty"`
	Status        enums.ItemStatus `json:"status"`
	PrepStartedAt *time.Time       `json:"prep_started_at,omitempty"`
	DeliveredAt   *time.Time       `json:"delivered_at,omitempty"`
	CanceledAt    *time.Time       `json:"canceled_at,omitempty"`
	ChangeReason  *string          `json:"change_reason,omitempty"`
	ReplacedBy    *string          `json:"replaced_by,omitempty"`
}

// AuditEvent exposes one audit trail entry.
type AuditEvent struct {
	ID        uuid.UUID            `json:"id"`
	TicketID  uuid.UUID            `json:"ticket_id"`
	ItemID    *uuid.UUID           `json:"item_id,omitempty"`
	EventType enums.AuditEventType `json:"event_type"`
	Message   string               `json:"message"`
	Metadata  types.JSONMap        `json:"metadata,omitempty"`
	ActorName *string              `json:"actor_name,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// TicketSummaryFromModel maps a stored ticket onto its card shape.
func TicketSummaryFromModel(m *models.Ticket) TicketSummary {
	return TicketSummary{
		ID:            m.ID,
		TableRef:      m.TableRef,
		WaiterName:    m.WaiterName,
		SeqNumber:     m.SeqNumber,
		TicketNumber:  m.TicketNumber,
		Status:        m.Status,
		OrderedAt:     m.OrderedAt,
		PrepStartedAt: m.PrepStartedAt,
		ReadyAt:       m.ReadyAt,
	}
}

// TicketSummariesFromModels maps a ticket list onto card shapes.
func TicketSummariesFromModels(rows []models.Ticket) []TicketSummary {
	out := make([]TicketSummary, 0, len(rows))
	for i := range rows {
		out = append(out, TicketSummaryFromModel(&rows[i]))
	}
	return out
}

// TicketWithItemsFromModel maps a stored ticket plus its loaded items onto
// the detail shape.
func TicketWithItemsFromModel(m *models.Ticket) TicketWithItems {
	items := make([]TicketItemDetail, 0, len(m.Items))
	for i := range m.Items {
		items = append(items, TicketItemDetailFromModel(&m.Items[i]))
	}
	return TicketWithItems{
		TicketSummary: TicketSummaryFromModel(m),
		Notes:         m.Notes,
		Items:         items,
	}
}

// TicketItemDetailFromModel maps a stored item onto its response shape.
func TicketItemDetailFromModel(m *models.TicketItem) TicketItemDetail {
	return TicketItemDetail{
		ID:            m.ID,
		LineRef:       m.LineRef,
		ProductName:   m.ProductName,
		Qty:           m.Qty.InexactFloat64(),
		Unit:          m.Unit,
		Status:        m.Status,
		PrepStartedAt: m.PrepStartedAt,
		DeliveredAt:   m.DeliveredAt,
		CanceledAt:    m.CanceledAt,
		ChangeReason:  m.ChangeReason,
		ReplacedBy:    m.ReplacedBy,
	}
}

// AuditEventsFromModels maps stored audit rows onto their response shape.
func AuditEventsFromModels(rows []models.TicketEvent) []AuditEvent {
	out := make([]AuditEvent, 0, len(rows))
	for i := range rows {
		e := rows[i]
		out = append(out, AuditEvent{
			ID:        e.ID,
			TicketID:  e.TicketID,
			ItemID:    e.ItemID,
			EventType: e.EventType,
			Message:   e.Message,
			Metadata:  e.Metadata,
			ActorName: e.ActorName,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
