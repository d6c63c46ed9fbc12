package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderCompleted = "ORDER_COMPLETED"
	OrderFailed    = "ORDER_FAILED"
	OrderCancelled = "ORDER_CANCELLED"
)

type OrderSnapshot struct {
	OrderId       uuid.UUID
	OrderCode     string
	UserId        uuid.UUID
	PaymentMethod string
	Status        string
	TotalAmount   int64
	Reason        string
}

// NewOrderEvent builds the bus event for a finalized order.
func NewOrderEvent(eventType string, o OrderSnapshot, at time.Time) Event {
	data := map[string]interface{}{
		"order_id":       o.OrderId.String(),
		"order_code":     o.OrderCode,
		"user_id":        o.UserId.String(),
		"payment_method": o.PaymentMethod,
		"status":         o.Status,
		"total_amount":   o.TotalAmount,
		"occurred_at":    at.UTC().Format(time.RFC3339),
	}
	if o.Reason != "" {
		data["reason"] = o.Reason
	}
	return Record{Type: eventType, Key: eventType + ":" + o.OrderCode, Data: data, OccurredAt: at}
}
