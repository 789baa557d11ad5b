package tickets

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dmejiasc/comandas-backend/pkg/db/models"
	"github.com/dmejiasc/comandas-backend/pkg/enums"
	"github.com/dmejiasc/comandas-backend/pkg/types"
)

func setupTicketsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// one named memory db per test so rows never leak between tests
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	tickets := `
CREATE TABLE IF NOT EXISTS kitchen_tickets (
  id TEXT PRIMARY KEY,
  source_doc_id TEXT NOT NULL UNIQUE,
  company_id INTEGER NOT NULL,
  branch_code TEXT,
  doc_type TEXT NOT NULL,
  seq_number INTEGER,
  table_ref TEXT,
  waiter_name TEXT,
  ticket_number INTEGER,
  notes TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  ordered_at DATETIME NOT NULL,
  prep_started_at DATETIME,
  ready_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE IF NOT EXISTS kitchen_ticket_items (
  id TEXT PRIMARY KEY,
  ticket_id TEXT NOT NULL,
  source_movement_id TEXT NOT NULL UNIQUE,
  line_ref INTEGER NOT NULL,
  product_name TEXT,
  qty NUMERIC NOT NULL,
  unit TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  prep_started_at DATETIME,
  delivered_at DATETIME,
  canceled_at DATETIME,
  change_reason TEXT,
  replaced_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	events := `
CREATE TABLE IF NOT EXISTS ticket_events (
  id TEXT PRIMARY KEY,
  ticket_id TEXT NOT NULL,
  item_id TEXT,
  event_type TEXT NOT NULL,
  message TEXT NOT NULL,
  metadata TEXT,
  actor_name TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(tickets).Error)
	require.NoError(t, db.Exec(items).Error)
	require.NoError(t, db.Exec(events).Error)
	return db
}

func seedRepoTicket(t *testing.T, repo Repository, mutate func(*models.Ticket)) *models.Ticket {
	t.Helper()

	table := "5"
	waiter := "Mesero 1"
	ticket := &models.Ticket{
		ID:          uuid.New(),
		SourceDocID: uuid.New(),
		CompanyID:   1,
		DocType:     "01f",
		TableRef:    &table,
		WaiterName:  &waiter,
		Status:      enums.TicketStatusPending,
		OrderedAt:   time.Now().UTC(),
	}
	if mutate != nil {
		mutate(ticket)
	}
	created, err := repo.CreateTicket(context.Background(), ticket)
	require.NoError(t, err)
	return created
}

func seedRepoItem(t *testing.T, repo Repository, ticketID uuid.UUID, line int, name string) *models.TicketItem {
	t.Helper()

	item := models.TicketItem{
		ID:               uuid.New(),
		TicketID:         ticketID,
		SourceMovementID: uuid.New(),
		LineRef:          line,
		ProductName:      &name,
		Qty:              decimal.NewFromInt(1),
		Status:           enums.ItemStatusPending,
	}
	require.NoError(t, repo.CreateTicketItems(context.Background(), []models.TicketItem{item}))
	return &item
}

func TestRepoFindTicketWithItemsOrdersByLine(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ticket := seedRepoTicket(t, repo, nil)
	seedRepoItem(t, repo, ticket.ID, 3, "Gaseosa")
	seedRepoItem(t, repo, ticket.ID, 1, "Hamburguesa")
	seedRepoItem(t, repo, ticket.ID, 2, "Papas")

	found, err := repo.FindTicketWithItems(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 3)
	assert.Equal(t, 1, found.Items[0].LineRef)
	assert.Equal(t, 2, found.Items[1].LineRef)
	assert.Equal(t, 3, found.Items[2].LineRef)

	_, err = repo.FindTicketWithItems(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoFindTicketItemIsScopedToTicket(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ticket := seedRepoTicket(t, repo, nil)
	other := seedRepoTicket(t, repo, nil)
	item := seedRepoItem(t, repo, ticket.ID, 1, "Hamburguesa")

	found, err := repo.FindTicketItem(ctx, ticket.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)

	_, err = repo.FindTicketItem(ctx, other.ID, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoUpdateTicketItemPartialColumns(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ticket := seedRepoTicket(t, repo, nil)
	item := seedRepoItem(t, repo, ticket.ID, 1, "Hamburguesa")

	now := time.Now().UTC()
	err := repo.UpdateTicketItem(ctx, item.ID, map[string]any{
		"status":          enums.ItemStatusInPrep,
		"prep_started_at": now,
	})
	require.NoError(t, err)

	found, err := repo.FindTicketItem(ctx, ticket.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ItemStatusInPrep, found.Status)
	require.NotNil(t, found.PrepStartedAt)
	assert.Nil(t, found.DeliveredAt)
	assert.Equal(t, "Hamburguesa", *found.ProductName)
}

func TestRepoListTicketsFiltersAndOrders(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC()
	older := seedRepoTicket(t, repo, func(tk *models.Ticket) {
		tk.OrderedAt = base.Add(-2 * time.Hour)
		tk.Status = enums.TicketStatusReady
	})
	newer := seedRepoTicket(t, repo, func(tk *models.Ticket) {
		tk.OrderedAt = base.Add(-time.Hour)
	})

	ready := enums.TicketStatusReady
	rows, err := repo.ListTickets(ctx, ListFilters{Status: &ready})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, older.ID, rows[0].ID)

	rows, err = repo.ListTickets(ctx, ListFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// newest first
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, older.ID, rows[1].ID)

	rows, err = repo.ListTickets(ctx, ListFilters{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRepoListTicketsTextSearchIsCaseInsensitive(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	waiter := "Carlos Pérez"
	match := seedRepoTicket(t, repo, func(tk *models.Ticket) {
		tk.WaiterName = &waiter
	})
	seedRepoTicket(t, repo, nil)

	rows, err := repo.ListTickets(ctx, ListFilters{Query: "carlos"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, match.ID, rows[0].ID)

	rows, err = repo.ListTickets(ctx, ListFilters{Query: "nadie"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepoListTicketsNumericSearchHitsTicketNumber(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	number := int64(20004)
	match := seedRepoTicket(t, repo, func(tk *models.Ticket) {
		tk.TicketNumber = &number
	})
	seedRepoTicket(t, repo, nil)

	rows, err := repo.ListTickets(ctx, ListFilters{Query: "20004"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, match.ID, rows[0].ID)
}

func TestRepoListTicketsNumericSearchIgnoresSignedInput(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	number := int64(20004)
	seedRepoTicket(t, repo, func(tk *models.Ticket) {
		tk.TicketNumber = &number
	})

	for _, query := range []string{"+20004", "-20004"} {
		rows, err := repo.ListTickets(ctx, ListFilters{Query: query})
		require.NoError(t, err)
		assert.Empty(t, rows, "query %q", query)
	}
}

func TestRepoCountAndUpdateTicket(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	before, err := repo.CountTickets(ctx)
	require.NoError(t, err)

	ticket := seedRepoTicket(t, repo, nil)

	after, err := repo.CountTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	now := time.Now().UTC()
	err = repo.UpdateTicket(ctx, ticket.ID, map[string]any{
		"status":          enums.TicketStatusInPrep,
		"prep_started_at": now,
	})
	require.NoError(t, err)

	found, err := repo.FindTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.TicketStatusInPrep, found.Status)
	require.NotNil(t, found.PrepStartedAt)
	assert.Nil(t, found.ReadyAt)
}

func TestRepoListTicketEventsOrdering(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ticket := seedRepoTicket(t, repo, nil)
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		event := models.TicketEvent{
			ID:        uuid.New(),
			TicketID:  ticket.ID,
			EventType: enums.AuditEventItemStatus,
			Message:   fmt.Sprintf("step %d", i),
			Metadata:  types.JSONMap{"to": "in_prep"},
			CreatedAt: base.Add(time.Duration(2-i) * time.Second),
		}
		require.NoError(t, db.Create(&event).Error)
	}

	events, err := repo.ListTicketEvents(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "step 2", events[0].Message)
	assert.Equal(t, "step 0", events[2].Message)
}
