package tickets

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmejiasc/comandas-backend/pkg/db/models"
)

// Repository defines persistence operations for the kitchen ticket tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateTicket(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error)
	CreateTicketItems(ctx context.Context, items []models.TicketItem) error
	FindTicket(ctx context.Context, ticketID uuid.UUID) (*models.Ticket, error)
	FindTicketWithItems(ctx context.Context, ticketID uuid.UUID) (*models.Ticket, error)
	FindTicketItem(ctx context.Context, ticketID, itemID uuid.UUID) (*models.TicketItem, error)
	FindItemsByTicket(ctx context.Context, ticketID uuid.UUID) ([]models.TicketItem, error)
	ListTickets(ctx context.Context, filters ListFilters) ([]models.Ticket, error)
	CountTickets(ctx context.Context) (int64, error)
	UpdateTicket(ctx context.Context, ticketID uuid.UUID, updates map[string]any) error
	UpdateTicketItem(ctx context.Context, itemID uuid.UUID, updates map[string]any) error
	ListTicketEvents(ctx context.Context, ticketID uuid.UUID) ([]models.TicketEvent, error)
}
