package orders

import (
	"time"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
)

// TimelineStep is one row of the fulfillment progress display.
type TimelineStep struct {
	Status    enums.OrderStatus `json:"status"`
	Label     string            `json:"label"`
	Completed bool              `json:"completed"`
	Current   bool              `json:"current"`
	At        *time.Time        `json:"at,omitempty"`
}

// fulfillmentPath is the happy-path status progression in display order.
var fulfillmentPath = []enums.OrderStatus{
	enums.OrderStatusPlaced,
	enums.OrderStatusConfirmed,
	enums.OrderStatusProcessing,
	enums.OrderStatusShipped,
	enums.OrderStatusOutForDelivery,
	enums.OrderStatusDelivered,
}

var stepLabels = map[enums.OrderStatus]string{
	enums.OrderStatusPlaced:         "Order placed",
	enums.OrderStatusConfirmed:      "Confirmed",
	enums.OrderStatusProcessing:     "In the atelier",
	enums.OrderStatusShipped:        "Shipped",
	enums.OrderStatusOutForDelivery: "Out for delivery",
	enums.OrderStatusDelivered:      "Delivered",
	enums.OrderStatusCancelled:      "Cancelled",
}

// BuildTimeline maps the order status onto the progress steps. Steps up to
// and including the current status are completed; a cancelled order shows the
// placed step plus a terminal cancelled row.
func BuildTimeline(order *models.Order) []TimelineStep {
	if order.Status == enums.OrderStatusCancelled {
		placedAt := order.PlacedAt
		steps := []TimelineStep{
			{
				Status:    enums.OrderStatusPlaced,
				Label:     stepLabels[enums.OrderStatusPlaced],
				Completed: true,
				At:        &placedAt,
			},
			{
				Status:    enums.OrderStatusCancelled,
				Label:     stepLabels[enums.OrderStatusCancelled],
				Completed: true,
				Current:   true,
				At:        order.CancelledAt,
			},
		}
		return steps
	}

	position := statusPosition(order.Status)
	steps := make([]TimelineStep, 0, len(fulfillmentPath))
	for i, status := range fulfillmentPath {
		step := TimelineStep{
			Status:    status,
			Label:     stepLabels[status],
			Completed: i <= position,
			Current:   i == position,
		}
		if step.Completed {
			step.At = stepTimestamp(order, status)
		}
		steps = append(steps, step)
	}
	return steps
}

func statusPosition(status enums.OrderStatus) int {
	for i, s := range fulfillmentPath {
		if s == status {
			return i
		}
	}
	return 0
}

func stepTimestamp(order *models.Order, status enums.OrderStatus) *time.Time {
	switch status {
	case enums.OrderStatusPlaced:
		at := order.PlacedAt
		return &at
	case enums.OrderStatusConfirmed:
		return order.ConfirmedAt
	case enums.OrderStatusShipped:
		return order.ShippedAt
	case enums.OrderStatusDelivered:
		return order.DeliveredAt
	default:
		return nil
	}
}
