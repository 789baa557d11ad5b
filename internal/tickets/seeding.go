package tickets

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dmejiasc/comandas-backend/pkg/db/models"
	"github.com/dmejiasc/comandas-backend/pkg/enums"
	pkgerrors "github.com/dmejiasc/comandas-backend/pkg/errors"
)

const seedTicketCount = 5

var seedItems = []struct {
	name string
	qty  int64
	unit string
}{
	{"Hamburguesa", 1, "UND"},
	{"Papas", 1, "UND"},
	{"Gaseosa", 2, "UND"},
}

// SeedDemo inserts a small demo board for local development. Refuses to run
// when the tickets table already has rows.
func (s *service) SeedDemo(ctx context.Context) (int, error) {
	seeded := 0
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// the empty check runs inside the transaction so concurrent seeds
		// cannot both pass it
		existing, err := repo.CountTickets(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count tickets")
		}
		if existing > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "tickets already exist, demo seed skipped")
		}

		now := s.now().UTC()

		for idx := 1; idx <= seedTicketCount; idx++ {
			branch := "001"
			table := fmt.Sprintf("%d", idx)
			waiter := fmt.Sprintf("Mesero %d", idx)
			notes := "Demo"
			seq := 10000 + idx
			number := int64(20000 + idx)

			ticket := &models.Ticket{
				ID:           uuid.New(),
				SourceDocID:  uuid.New(),
				CompanyID:    1,
				BranchCode:   &branch,
				DocType:      "01f",
				SeqNumber:    &seq,
				TableRef:     &table,
				WaiterName:   &waiter,
				TicketNumber: &number,
				Notes:        &notes,
				Status:       enums.TicketStatusPending,
				OrderedAt:    now,
			}
			if _, err := repo.CreateTicket(ctx, ticket); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed ticket")
			}

			items := make([]models.TicketItem, 0, len(seedItems))
			for lineIdx, seed := range seedItems {
				name := seed.name
				unit := seed.unit
				items = append(items, models.TicketItem{
					ID:               uuid.New(),
					TicketID:         ticket.ID,
					SourceMovementID: uuid.New(),
					LineRef:          lineIdx + 1,
					ProductName:      &name,
					Qty:              decimal.NewFromInt(seed.qty),
					Unit:             &unit,
					Status:           enums.ItemStatusPending,
				})
			}
			if err := repo.CreateTicketItems(ctx, items); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed ticket items")
			}
			seeded++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return seeded, nil
}
