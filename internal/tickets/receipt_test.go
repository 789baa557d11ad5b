package tickets

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmejiasc/comandas-backend/pkg/db/models"
	"github.com/dmejiasc/comandas-backend/pkg/enums"
	pkgerrors "github.com/dmejiasc/comandas-backend/pkg/errors"
)

func TestNormalizeReceiptWidth(t *testing.T) {
	cases := []struct {
		name    string
		input   int
		want    int
		wantErr bool
	}{
		{name: "zero falls back to default", input: 0, want: 80},
		{name: "thermal 58", input: 58, want: 58},
		{name: "wide 120", input: 120, want: 120},
		{name: "below range", input: 57, wantErr: true},
		{name: "above range", input: 121, wantErr: true},
		{name: "negative", input: -5, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeReceiptWidth(tc.input)
			if tc.wantErr {
				typed := pkgerrors.As(err)
				if typed == nil || typed.Code() != pkgerrors.CodeValidation {
					t.Fatalf("expected validation error got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d got %d", tc.want, got)
			}
		})
	}
}

func TestRenderReceipt(t *testing.T) {
	number := int64(20001)
	table := "12"
	waiter := "Mesero 3"
	seq := 10001
	burger := "Hamburguesa"
	soda := "Gaseosa"
	ticket := &models.Ticket{
		ID:           uuid.New(),
		TicketNumber: &number,
		SeqNumber:    &seq,
		TableRef:     &table,
		WaiterName:   &waiter,
		Status:       enums.TicketStatusInPrep,
		OrderedAt:    time.Date(2025, 8, 12, 13, 30, 0, 0, time.UTC),
		Items: []models.TicketItem{
			{ProductName: &burger, Qty: decimal.NewFromInt(1)},
			{ProductName: &soda, Qty: decimal.NewFromInt(2)},
		},
	}

	html, err := renderReceipt(ticket, 58)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	for _, fragment := range []string{
		"COMANDA #20001",
		"size: 58mm auto;",
		"<strong>Mesa:</strong> 12",
		"Mesero 3",
		"Hamburguesa",
		"Gaseosa",
		">2<",
		"in_prep",
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("receipt missing %q:\n%s", fragment, html)
		}
	}
}

func TestRenderReceiptHandlesMissingOptionalFields(t *testing.T) {
	ticket := &models.Ticket{
		ID:        uuid.New(),
		Status:    enums.TicketStatusPending,
		OrderedAt: time.Now().UTC(),
	}

	html, err := renderReceipt(ticket, 80)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !strings.Contains(html, "size: 80mm auto;") {
		t.Fatal("expected default width rule")
	}
	if !strings.Contains(html, "COMANDA #") {
		t.Fatal("expected header even without ticket number")
	}
}
