package dto

import (
	"time"

	"github.com/google/uuid"
)

type OrderLineDTO struct {
	ProductId uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unitPrice"`
}

type OrderDTO struct {
	Id            uuid.UUID       `json:"id"`
	OrderCode     string          `json:"orderCode"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalAmount   int64           `json:"totalAmount"`
	Items         []*OrderLineDTO `json:"items"`
	PaymentUrl    string          `json:"paymentUrl,omitempty"`
	FailureReason string          `json:"failureReason,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
}

type OrderListResponse struct {
	Success bool        `json:"success"`
	Orders  []*OrderDTO `json:"orders"`
}

type OrderResponse struct {
	Success bool      `json:"success"`
	Order   *OrderDTO `json:"order"`
}
