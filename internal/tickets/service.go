package tickets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmejiasc/comandas-backend/pkg/audit"
	"github.com/dmejiasc/comandas-backend/pkg/db/models"
	"github.com/dmejiasc/comandas-backend/pkg/enums"
	pkgerrors "github.com/dmejiasc/comandas-backend/pkg/errors"
	"github.com/dmejiasc/comandas-backend/pkg/logger"
	"github.com/dmejiasc/comandas-backend/pkg/metrics"
	"github.com/dmejiasc/comandas-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines ticket-level operations beyond repository reads.
type Service interface {
	GetTicket(ctx context.Context, ticketID uuid.UUID) (*models.Ticket, error)
	ListTickets(ctx context.Context, filters ListFilters) ([]models.Ticket, error)
	ListTicketEvents(ctx context.Context, ticketID uuid.UUID) ([]models.TicketEvent, error)
	UpdateItemStatus(ctx context.Context, input UpdateItemStatusInput) (*models.TicketItem, error)
	CancelItem(ctx context.Context, input CancelItemInput) (*models.TicketItem, error)
	ReplaceItem(ctx context.Context, input ReplaceItemInput) (*models.TicketItem, error)
	PrintTicket(ctx context.Context, input PrintTicketInput) (string, error)
	SeedDemo(ctx context.Context) (int, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	auditor audit.Recorder
	logg    *logger.Logger
	metrics *metrics.KitchenMetrics
	now     func() time.Time
}

// NewService builds a ticket service with the required dependencies.
func NewService(repo Repository, tx txRunner, auditor audit.Recorder, logg *logger.Logger, km *metrics.KitchenMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tickets repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if auditor == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		auditor: auditor,
		logg:    logg,
		metrics: km,
		now:     time.Now,
	}, nil
}

func (s *service) GetTicket(ctx context.Context, ticketID uuid.UUID) (*models.Ticket, error) {
	if ticketID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket id required")
	}
	ticket, err := s.repo.FindTicketWithItems(ctx, ticketID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ticket")
	}
	return ticket, nil
}

func (s *service) ListTickets(ctx context.Context, filters ListFilters) ([]models.Ticket, error) {
	rows, err := s.repo.ListTickets(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tickets")
	}
	return rows, nil
}

func (s *service) ListTicketEvents(ctx context.Context, ticketID uuid.UUID) ([]models.TicketEvent, error) {
	if ticketID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket id required")
	}
	if _, err := s.repo.FindTicket(ctx, ticketID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ticket")
	}
	events, err := s.repo.ListTicketEvents(ctx, ticketID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ticket events")
	}
	return events, nil
}

func (s *service) UpdateItemStatus(ctx context.Context, input UpdateItemStatusInput) (*models.TicketItem, error) {
	if input.TicketID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket id required")
	}
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item status")
	}

	var result *models.TicketItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ticket, item, err := s.loadTicketItem(ctx, repo, input.TicketID, input.ItemID)
		if err != nil {
			return err
		}

		// same status is a silent no-op: no timestamps, no events
		if item.Status == input.Status {
			result = item
			return nil
		}

		now := s.now().UTC()
		fromStatus := item.Status

		updates := map[string]any{"status": input.Status}
		switch input.Status {
		case enums.ItemStatusInPrep:
			if item.PrepStartedAt == nil {
				updates["prep_started_at"] = now
			}
		case enums.ItemStatusDelivered:
			if item.DeliveredAt == nil {
				updates["delivered_at"] = now
			}
		case enums.ItemStatusCanceled:
			if item.CanceledAt == nil {
				updates["canceled_at"] = now
			}
		}
		if err := repo.UpdateTicketItem(ctx, item.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item status")
		}
		applyItemUpdates(item, updates, input.Status, now)

		entry := audit.Entry{
			TicketID:  ticket.ID,
			ItemID:    &item.ID,
			EventType: enums.AuditEventItemStatus,
			Message:   itemEventMessage(item, fromStatus, input.Status),
			ActorName: input.ActorName,
			Metadata: types.JSONMap{
				"from":    fromStatus.String(),
				"to":      input.Status.String(),
				"item_id": item.ID.String(),
			},
		}
		if err := s.auditor.Record(ctx, tx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record item event")
		}

		if err := s.syncTicketStatus(ctx, tx, repo, ticket, input.ActorName, now); err != nil {
			return err
		}

		s.metrics.IncItemTransition(input.Status.String())
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) CancelItem(ctx context.Context, input CancelItemInput) (*models.TicketItem, error) {
	if input.TicketID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket id required")
	}
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cancellation reason required")
	}

	var result *models.TicketItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ticket, item, err := s.loadTicketItem(ctx, repo, input.TicketID, input.ItemID)
		if err != nil {
			return err
		}

		now := s.now().UTC()

		// cancel is unconditional: delivered items are pulled back too
		updates := map[string]any{
			"status":        enums.ItemStatusCanceled,
			"change_reason": reason,
		}
		if item.CanceledAt == nil {
			updates["canceled_at"] = now
		}
		if err := repo.UpdateTicketItem(ctx, item.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel item")
		}
		applyItemUpdates(item, updates, enums.ItemStatusCanceled, now)
		item.ChangeReason = &reason

		entry := audit.Entry{
			TicketID:  ticket.ID,
			ItemID:    &item.ID,
			EventType: enums.AuditEventItemCancel,
			Message:   fmt.Sprintf("%s canceled: %s", itemLabel(item), reason),
			ActorName: input.ActorName,
			Metadata: types.JSONMap{
				"reason":  reason,
				"item_id": item.ID.String(),
			},
		}
		if err := s.auditor.Record(ctx, tx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record cancel event")
		}

		if err := s.syncTicketStatus(ctx, tx, repo, ticket, input.ActorName, now); err != nil {
			return err
		}

		s.metrics.IncItemTransition(enums.ItemStatusCanceled.String())
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) ReplaceItem(ctx context.Context, input ReplaceItemInput) (*models.TicketItem, error) {
	if input.TicketID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket id required")
	}
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	newName := strings.TrimSpace(input.NewProductName)
	if newName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "replacement product name required")
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "replacement reason required")
	}

	var result *models.TicketItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ticket, item, err := s.loadTicketItem(ctx, repo, input.TicketID, input.ItemID)
		if err != nil {
			return err
		}

		// annotation only: item and ticket status stay untouched
		updates := map[string]any{
			"replaced_by":   newName,
			"change_reason": reason,
		}
		if err := repo.UpdateTicketItem(ctx, item.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace item")
		}
		item.ReplacedBy = &newName
		item.ChangeReason = &reason

		entry := audit.Entry{
			TicketID:  ticket.ID,
			ItemID:    &item.ID,
			EventType: enums.AuditEventItemReplace,
			Message:   fmt.Sprintf("%s replaced by %s: %s", itemLabel(item), newName, reason),
			ActorName: input.ActorName,
			Metadata: types.JSONMap{
				"from":    productNameOrEmpty(item),
				"to":      newName,
				"reason":  reason,
				"item_id": item.ID.String(),
			},
		}
		if err := s.auditor.Record(ctx, tx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record replace event")
		}

		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) PrintTicket(ctx context.Context, input PrintTicketInput) (string, error) {
	if input.TicketID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "ticket id required")
	}
	width, err := normalizeReceiptWidth(input.WidthMM)
	if err != nil {
		return "", err
	}

	ticket, err := s.GetTicket(ctx, input.TicketID)
	if err != nil {
		return "", err
	}

	auditErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.auditor.Record(ctx, tx, audit.Entry{
			TicketID:  ticket.ID,
			EventType: enums.AuditEventPrint,
			Message:   fmt.Sprintf("receipt printed at %dmm", width),
			ActorName: input.ActorName,
			Metadata: types.JSONMap{
				"ticket_id": ticket.ID.String(),
				"width":     width,
			},
		})
	})
	if auditErr != nil && s.logg != nil {
		// printing keeps working even when the audit write fails
		s.logg.Warn(s.logg.WithField(ctx, "ticket_id", ticket.ID.String()), "print audit write failed: "+auditErr.Error())
	}

	html, err := renderReceipt(ticket, width)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render receipt")
	}

	s.metrics.IncPrint()
	return html, nil
}

func (s *service) loadTicketItem(ctx context.Context, repo Repository, ticketID, itemID uuid.UUID) (*models.Ticket, *models.TicketItem, error) {
	ticket, err := repo.FindTicket(ctx, ticketID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ticket")
	}
	item, err := repo.FindTicketItem(ctx, ticketID, itemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return ticket, item, nil
}

// syncTicketStatus recomputes the ticket status from the full item set and,
// when it changed, applies the guarded timestamps and records TICKET_STATUS.
func (s *service) syncTicketStatus(ctx context.Context, tx *gorm.DB, repo Repository, ticket *models.Ticket, actor *string, now time.Time) error {
	items, err := repo.FindItemsByTicket(ctx, ticket.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload items")
	}

	newStatus := DeriveTicketStatus(items)
	if newStatus == ticket.Status {
		return nil
	}

	updates := ticketTimestampUpdates(ticket, newStatus, now)
	updates["status"] = newStatus
	if err := repo.UpdateTicket(ctx, ticket.ID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ticket status")
	}

	fromStatus := ticket.Status
	ticket.Status = newStatus
	if stamp, ok := updates["prep_started_at"]; ok {
		at := stamp.(time.Time)
		ticket.PrepStartedAt = &at
	}
	if stamp, ok := updates["ready_at"]; ok {
		at := stamp.(time.Time)
		ticket.ReadyAt = &at
	}

	entry := audit.Entry{
		TicketID:  ticket.ID,
		EventType: enums.AuditEventTicketStatus,
		Message:   fmt.Sprintf("status: %s -> %s", fromStatus, newStatus),
		ActorName: actor,
		Metadata: types.JSONMap{
			"from": fromStatus.String(),
			"to":   newStatus.String(),
		},
	}
	if err := s.auditor.Record(ctx, tx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record ticket event")
	}

	s.metrics.IncTicketTransition(newStatus.String())
	return nil
}

func applyItemUpdates(item *models.TicketItem, updates map[string]any, status enums.ItemStatus, now time.Time) {
	item.Status = status
	if _, ok := updates["prep_started_at"]; ok {
		item.PrepStartedAt = stampOnce(item.PrepStartedAt, now)
	}
	if _, ok := updates["delivered_at"]; ok {
		item.DeliveredAt = stampOnce(item.DeliveredAt, now)
	}
	if _, ok := updates["canceled_at"]; ok {
		item.CanceledAt = stampOnce(item.CanceledAt, now)
	}
}

func itemEventMessage(item *models.TicketItem, from, to enums.ItemStatus) string {
	return fmt.Sprintf("%s: %s -> %s", itemLabel(item), from, to)
}

func itemLabel(item *models.TicketItem) string {
	if item.ProductName != nil && *item.ProductName != "" {
		return *item.ProductName
	}
	return fmt.Sprintf("line %d", item.LineRef)
}

func productNameOrEmpty(item *models.TicketItem) string {
	if item.ProductName == nil {
		return ""
	}
	return *item.ProductName
}
