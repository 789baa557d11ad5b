package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmejiasc/comandas-backend/pkg/enums"
	"github.com/dmejiasc/comandas-backend/pkg/types"
)

// TicketEvent is one append-only audit trail entry. Rows are only ever
// inserted; CreatedAt is the event's occurrence time, assigned server-side.
// Metadata keys (from/to/reason/item_id/ticket_id/width) are parsed by
// downstream consumers per event type.
type TicketEvent struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TicketID uuid.UUID  `gorm:"column:ticket_id;type:uuid;not null;index"`
	ItemID   *uuid.UUID `gorm:"column:item_id;type:uuid"`

	EventType enums.AuditEventType `gorm:"column:event_type;type:audit_event_type;not null"`
	Message   string               `gorm:"column:message;not null"`
	Metadata  types.JSONMap        `gorm:"column:metadata;type:jsonb"`
	ActorName *string              `gorm:"column:actor_name"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName maps the model to the ticket_events table.
func (TicketEvent) TableName() string {
	return "ticket_events"
}
