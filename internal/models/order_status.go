package models

// Order status vocabulary. Transitions are not restricted to the
// processing -> in transit -> delivered path: an admin may overwrite the
// status with any recognized value, including moving backwards.
const (
	OrderStatusProcessing = "processing"
	OrderStatusInTransit  = "in transit"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

var orderStatuses = []string{
	OrderStatusProcessing,
	OrderStatusInTransit,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func ValidOrderStatus(s string) bool {
	for _, status := range orderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func OrderStatuses() []string {
	out := make([]string, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}
