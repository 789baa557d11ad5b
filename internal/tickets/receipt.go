package tickets

import (
	"strconv"

	"github.com/flosch/pongo2/v6"

	"github.com/dmejiasc/comandas-backend/pkg/db/models"
	pkgerrors "github.com/dmejiasc/comandas-backend/pkg/errors"
)

const (
	defaultReceiptWidthMM = 80
	minReceiptWidthMM     = 58
	maxReceiptWidthMM     = 120
)

var receiptTemplate = pongo2.Must(pongo2.FromString(`<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>Comanda #{{ ticket_number }}</title>
  <style>
    @page {
      size: {{ width }}mm auto;
      margin: 4mm;
    }
    body {
      font-family: Arial, sans-serif;
      font-size: 12px;
      color: #111;
    }
    h1 {
      font-size: 16px;
      margin: 0 0 6px 0;
      text-align:center;
    }
    .muted { color:#555; font-size: 11px; }
    .row { display:flex; justify-content:space-between; gap:8px; }
    hr { border:0; border-top:1px dashed #666; margin:8px 0; }
    table { width:100%; border-collapse:collapse; }
  </style>
</head>
<body>
  <h1>COMANDA #{{ ticket_number }}</h1>
  <div class="row"><div><strong>Mesa:</strong> {{ table_ref }}</div><div><strong>Pedido:</strong> {{ seq_number }}</div></div>
  <div class="row muted"><div><strong>Mesero:</strong> {{ waiter_name }}</div><div>{{ ordered_at }}</div></div>
  <hr/>
  <table>
    {% for item in items %}
    <tr>
      <td style="width:18%; text-align:right; padding:2px 0;"><strong>{{ item.Qty }}</strong></td>
      <td style="width:82%; padding:2px 0 2px 8px;">{{ item.Name }}</td>
    </tr>
    {% endfor %}
  </table>
  <hr/>
  <div class="muted">Estado: <strong>{{ status }}</strong></div>
  <script>
    window.onload = function() {
      window.print();
      setTimeout(()=>window.close(), 350);
    }
  </script>
</body>
</html>
`))

type receiptLine struct {
	Qty  string
	Name string
}

func normalizeReceiptWidth(widthMM int) (int, error) {
	if widthMM == 0 {
		return defaultReceiptWidthMM, nil
	}
	if widthMM < minReceiptWidthMM || widthMM > maxReceiptWidthMM {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "receipt width must be between 58 and 120 mm")
	}
	return widthMM, nil
}

// renderReceipt produces the printable HTML for a ticket. Read-only.
func renderReceipt(ticket *models.Ticket, widthMM int) (string, error) {
	lines := make([]receiptLine, 0, len(ticket.Items))
	for _, item := range ticket.Items {
		lines = append(lines, receiptLine{
			Qty:  item.Qty.String(),
			Name: productNameOrEmpty(&item),
		})
	}

	ctx := pongo2.Context{
		"width":         widthMM,
		"ticket_number": derefInt64(ticket.TicketNumber),
		"seq_number":    derefInt(ticket.SeqNumber),
		"table_ref":     derefString(ticket.TableRef),
		"waiter_name":   derefString(ticket.WaiterName),
		"ordered_at":    ticket.OrderedAt.Local().Format("2006-01-02 15:04"),
		"status":        ticket.Status.String(),
		"items":         lines,
	}
	return receiptTemplate.Execute(ctx)
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func derefInt64(value *int64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatInt(*value, 10)
}
