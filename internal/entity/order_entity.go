package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusCart                    OrderStatus = "CART"
	OrderStatusPendingPayment          OrderStatus = "PENDING_PAYMENT"
	OrderStatusAwaitingGatewayRedirect OrderStatus = "AWAITING_GATEWAY_REDIRECT"
	OrderStatusCompleted               OrderStatus = "COMPLETED"
	OrderStatusFailed                  OrderStatus = "FAILED"
	OrderStatusCancelled               OrderStatus = "CANCELLED"

	PaymentMethodCOD  PaymentMethod = "COD"
	PaymentMethodMomo PaymentMethod = "MOMO"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

// OrderLine is the priced snapshot of a cart line at checkout time.
type OrderLine struct {
	ProductId uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
}

type Order struct {
	Id            uuid.UUID
	OrderCode     string // gateway-facing order id, partner code + millis
	UserId        uuid.UUID
	Items         []OrderLine
	TotalAmount   int64
	PaymentMethod PaymentMethod
	Status        OrderStatus
	ExternalTxnId *string
	PaymentUrl    string
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
}
