package enums

import "fmt"

// AuditEventType labels an entry in the ticket audit trail. The uppercase
// values are persisted as-is and parsed by downstream consumers; do not
// rename them.
type AuditEventType string

const (
	AuditEventItemStatus   AuditEventType = "ITEM_STATUS"
	AuditEventItemCancel   AuditEventType = "ITEM_CANCEL"
	AuditEventItemReplace  AuditEventType = "ITEM_REPLACE"
	AuditEventTicketStatus AuditEventType = "TICKET_STATUS"
	AuditEventPrint        AuditEventType = "PRINT"
)

var validAuditEventTypes = []AuditEventType{
	AuditEventItemStatus,
	AuditEventItemCancel,
	AuditEventItemReplace,
	AuditEventTicketStatus,
	AuditEventPrint,
}

// String implements fmt.Stringer.
func (a AuditEventType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AuditEventType.
func (a AuditEventType) IsValid() bool {
	for _, candidate := range validAuditEventTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAuditEventType converts raw input into an AuditEventType.
func ParseAuditEventType(value string) (AuditEventType, error) {
	for _, candidate := range validAuditEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid audit event type %q", value)
}
