package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartKey identifies a cart line. Empty size or color means "not chosen".
type CartKey struct {
	ProductId uuid.UUID
	Size      string
	Color     string
}

type CartLineItem struct {
	ProductId uuid.UUID
	Size      string
	Color     string
	Quantity  int
	AddedAt   time.Time
}

func (i CartLineItem) Key() CartKey {
	return CartKey{ProductId: i.ProductId, Size: i.Size, Color: i.Color}
}

// Cart is the ordered line list owned by one user. The product is referenced
// by id only and resolved through the catalog at read time.
type Cart struct {
	UserId uuid.UUID
	Items  []CartLineItem
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartLineView is a cart line joined with live catalog data. Product is nil
// when the referenced product no longer resolves.
type CartLineView struct {
	CartLineItem
	Product *Product
}

type CartView struct {
	UserId uuid.UUID
	Lines  []CartLineView
}
