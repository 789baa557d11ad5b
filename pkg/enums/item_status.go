package enums

import "fmt"

// ItemStatus tracks the lifecycle of a single ticket line item.
//
// Any status is settable from any other status; the kitchen occasionally
// walks an item backward (delivered to pending) to correct a mistake, so no
// transition is guarded.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusInPrep    ItemStatus = "in_prep"
	ItemStatusDelivered ItemStatus = "delivered"
	ItemStatusCanceled  ItemStatus = "canceled"
)

var validItemStatuses = []ItemStatus{
	ItemStatusPending,
	ItemStatusInPrep,
	ItemStatusDelivered,
	ItemStatusCanceled,
}

// String implements fmt.Stringer.
func (i ItemStatus) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemStatus.
func (i ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemStatus converts raw input into an ItemStatus.
func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}
