package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmejiasc/comandas-backend/pkg/db/models"
	"github.com/dmejiasc/comandas-backend/pkg/enums"
	"github.com/dmejiasc/comandas-backend/pkg/logger"
	"github.com/dmejiasc/comandas-backend/pkg/types"
)

// Entry is one audit event to persist alongside the mutation that caused it.
type Entry struct {
	TicketID  uuid.UUID
	ItemID    *uuid.UUID
	EventType enums.AuditEventType
	Message   string
	ActorName *string
	Metadata  types.JSONMap
}

// Recorder persists audit entries inside the caller's transaction so the
// trail commits or rolls back together with the change it describes.
type Recorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry Entry) error
}

type Service struct {
	logg *logger.Logger
}

func NewService(logg *logger.Logger) *Service {
	return &Service{logg: logg}
}

func (s *Service) Record(ctx context.Context, tx *gorm.DB, entry Entry) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if !entry.EventType.IsValid() {
		return fmt.Errorf("invalid audit event type %q", entry.EventType)
	}
	if entry.TicketID == uuid.Nil {
		return errors.New("ticket id required")
	}

	row := models.TicketEvent{
		ID:        uuid.New(),
		TicketID:  entry.TicketID,
		ItemID:    entry.ItemID,
		EventType: entry.EventType,
		Message:   entry.Message,
		ActorName: entry.ActorName,
		Metadata:  entry.Metadata,
	}
	if err := tx.Create(&row).Error; err != nil {
		return err
	}

	if s.logg != nil {
		fields := map[string]any{
			"event_type": entry.EventType,
			"ticket_id":  entry.TicketID.String(),
		}
		if entry.ItemID != nil {
			fields["item_id"] = entry.ItemID.String()
		}
		logCtx := s.logg.WithFields(ctx, fields)
		s.logg.Info(logCtx, "audit event recorded")
	}
	return nil
}
