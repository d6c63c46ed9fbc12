package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddToCartRequest struct {
	ProductId string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"max=1000"`
	Size      string `json:"size" validate:"max=20"`
	Color     string `json:"color" validate:"max=50"`
}

// UpdateCartRequest carries a signed quantity delta.
type UpdateCartRequest struct {
	ProductId string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=-1000,max=1000"`
	Size      string `json:"size" validate:"max=20"`
	Color     string `json:"color" validate:"max=50"`
}

type RemoveCartRequest struct {
	ProductId string `json:"productId" validate:"required,uuid"`
	Size      string `json:"size" validate:"max=20"`
	Color     string `json:"color" validate:"max=50"`
}

// CartLineDTO.Product is null when the product no longer exists.
type CartLineDTO struct {
	ProductId uuid.UUID   `json:"productId"`
	Product   *ProductDTO `json:"product"`
	Size      string      `json:"size,omitempty"`
	Color     string      `json:"color,omitempty"`
	Quantity  int         `json:"quantity"`
	Subtotal  int64       `json:"subtotal"`
	AddedAt   time.Time   `json:"addedAt"`
}

type CartResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message,omitempty"`
	CartCount int            `json:"cartCount"`
	Cart      []*CartLineDTO `json:"cart"`
	Total     int64          `json:"total"`
}
