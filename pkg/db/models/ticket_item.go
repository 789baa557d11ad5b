package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmejiasc/comandas-backend/pkg/enums"
)

// TicketItem is one product line inside a ticket. Items are created in batch
// with their ticket and never deleted on their own; the cascade from the
// ticket is the only removal path.
//
// The three status timestamps are write-once: each is set the first time the
// item reaches the matching status and never overwritten afterwards.
type TicketItem struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TicketID uuid.UUID `gorm:"column:ticket_id;type:uuid;not null"`

	SourceMovementID uuid.UUID `gorm:"column:source_movement_id;type:uuid;not null;uniqueIndex"`
	LineRef          int       `gorm:"column:line_ref;not null"`

	ProductName *string         `gorm:"column:product_name"`
	Qty         decimal.Decimal `gorm:"column:qty;type:numeric(18,4);not null"`
	Unit        *string         `gorm:"column:unit;size:20"`

	Status enums.ItemStatus `gorm:"column:status;type:item_status;not null;default:'pending'"`

	PrepStartedAt *time.Time `gorm:"column:prep_started_at"`
	DeliveredAt   *time.Time `gorm:"column:delivered_at"`
	CanceledAt    *time.Time `gorm:"column:canceled_at"`

	ChangeReason *string `gorm:"column:change_reason"`
	ReplacedBy   *string `gorm:"column:replaced_by"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps the model to the kitchen_ticket_items table.
func (TicketItem) TableName() string {
	return "kitchen_ticket_items"
}
