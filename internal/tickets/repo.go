package tickets

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmejiasc/comandas-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a tickets repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateTicket(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error) {
	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *repository) CreateTicketItems(ctx context.Context, items []models.TicketItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindTicket(ctx context.Context, ticketID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Where("id = ?", ticketID).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) FindTicketWithItems(ctx context.Context, ticketID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_ref ASC, created_at ASC")
		}).
		Where("id = ?", ticketID).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) FindTicketItem(ctx context.Context, ticketID, itemID uuid.UUID) (*models.TicketItem, error) {
	var item models.TicketItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND ticket_id = ?", itemID, ticketID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindItemsByTicket(ctx context.Context, ticketID uuid.UUID) ([]models.TicketItem, error) {
	var items []models.TicketItem
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("line_ref ASC").
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListTickets(ctx context.Context, filters ListFilters) ([]models.Ticket, error) {
	// card-level rows only; the detail endpoint loads items
	query := r.db.WithContext(ctx).Model(&models.Ticket{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if search := filters.Query; search != "" {
		pattern := "%" + search + "%"
		// sqlite has no ILIKE
		conditions := "LOWER(table_ref) LIKE LOWER(?) OR LOWER(waiter_name) LIKE LOWER(?) OR LOWER(notes) LIKE LOWER(?)"
		args := []any{pattern, pattern, pattern}
		// digits only: signed forms like "+5" never match the numbers
		if isDigits(search) {
			if number, err := strconv.ParseInt(search, 10, 64); err == nil {
				conditions += " OR seq_number = ? OR ticket_number = ?"
				args = append(args, number, number)
			}
		}
		query = query.Where(conditions, args...)
	}

	var rows []models.Ticket
	err := query.
		Order("ordered_at DESC").
		Limit(filters.EffectiveLimit()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (r *repository) CountTickets(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Count(&count).Error
	return count, err
}

func (r *repository) UpdateTicket(ctx context.Context, ticketID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", ticketID).
		Updates(updates).Error
}

func (r *repository) UpdateTicketItem(ctx context.Context, itemID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.TicketItem{}).
		Where("id = ?", itemID).
		Updates(updates).Error
}

func (r *repository) ListTicketEvents(ctx context.Context, ticketID uuid.UUID) ([]models.TicketEvent, error) {
	var events []models.TicketEvent
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
