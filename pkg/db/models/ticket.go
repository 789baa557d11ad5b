package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmejiasc/comandas-backend/pkg/enums"
)

// Ticket is one kitchen comanda synced in from the POS. The pos correlation
// columns (source document, company, branch, doc type, sequence) are opaque
// pass-through values; nothing here interprets them.
//
// Status is derived exclusively from the item set; OrderedAt is immutable
// after creation and PrepStartedAt/ReadyAt are written at most once.
type Ticket struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`

	SourceDocID uuid.UUID `gorm:"column:source_doc_id;type:uuid;not null;uniqueIndex"`
	CompanyID   int       `gorm:"column:company_id;not null"`
	BranchCode  *string   `gorm:"column:branch_code;size:3"`
	DocType     string    `gorm:"column:doc_type;size:3;not null"`
	SeqNumber   *int      `gorm:"column:seq_number"`

	TableRef   *string `gorm:"column:table_ref;size:255"`
	WaiterName *string `gorm:"column:waiter_name;size:255"`

	TicketNumber *int64  `gorm:"column:ticket_number"`
	Notes        *string `gorm:"column:notes"`

	Status enums.TicketStatus `gorm:"column:status;type:ticket_status;not null;default:'pending'"`

	OrderedAt     time.Time  `gorm:"column:ordered_at;not null"`
	PrepStartedAt *time.Time `gorm:"column:prep_started_at"`
	ReadyAt       *time.Time `gorm:"column:ready_at"`

	Items []TicketItem `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps the model to the kitchen_tickets table.
func (Ticket) TableName() string {
	return "kitchen_tickets"
}
