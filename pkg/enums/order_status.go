package enums

import "fmt"

// OrderStatus maps to the status column on orders.
type OrderStatus string

const (
	// OrderStatusPending is the initial status of every order. No further
	// transitions are defined by this service today.
	OrderStatusPending OrderStatus = "PENDING"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
}

// IsValid reports whether the value matches a known order status.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
