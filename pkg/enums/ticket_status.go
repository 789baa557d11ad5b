package enums

import "fmt"

// TicketStatus is the aggregate kitchen ticket state. It is never written
// directly by callers; it is always derived from the ticket's item statuses.
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusInPrep   TicketStatus = "in_prep"
	TicketStatusPartial  TicketStatus = "partial"
	TicketStatusReady    TicketStatus = "ready"
	TicketStatusCanceled TicketStatus = "canceled"
)

var validTicketStatuses = []TicketStatus{
	TicketStatusPending,
	TicketStatusInPrep,
	TicketStatusPartial,
	TicketStatusReady,
	TicketStatusCanceled,
}

// String implements fmt.Stringer.
func (t TicketStatus) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TicketStatus.
func (t TicketStatus) IsValid() bool {
	for _, candidate := range validTicketStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTicketStatus converts raw input into a TicketStatus.
func ParseTicketStatus(value string) (TicketStatus, error) {
	for _, candidate := range validTicketStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ticket status %q", value)
}
