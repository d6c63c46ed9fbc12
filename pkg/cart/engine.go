package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fashion-chatbot-be/internal/entity"

	"github.com/google/uuid"
)

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 1000

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotInCart   = errors.New("item not in cart")
	ErrQuantityLimit   = fmt.Errorf("line quantity exceeds %d", MaxLineQuantity)
)

// Catalog resolves product references. A missing product is reported as
// (nil, nil); errors are reserved for lookup failures.
type Catalog interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
}

// Engine applies cart mutations to a caller-owned cart value. It never
// persists anything; callers save the returned cart.
type Engine struct {
	catalog Catalog
	now     func() time.Time
}

func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog, now: time.Now}
}

// AddItem merges qty into the line with the same (product, size, color) key,
// or appends a new line. A non-positive qty counts as 1.
func (e *Engine) AddItem(ctx context.Context, c entity.Cart, productId uuid.UUID, qty int, size, color string) (entity.Cart, error) {
	product, err := e.catalog.FindProduct(ctx, productId)
	if err != nil {
		return c, fmt.Errorf("lookup product %s: %w", productId, err)
	}
	if product == nil {
		return c, ErrProductNotFound
	}

	if qty < 1 {
		qty = 1
	}
	if qty > MaxLineQuantity {
		return c, ErrQuantityLimit
	}

	items := cloneItems(c.Items)
	key := entity.CartKey{ProductId: productId, Size: size, Color: color}
	if idx := indexOf(items, key); idx >= 0 {
		if items[idx].Quantity > MaxLineQuantity-qty {
			return c, ErrQuantityLimit
		}
		items[idx].Quantity += qty
	} else {
		items = append(items, entity.CartLineItem{
			ProductId: productId,
			Size:      size,
			Color:     color,
			Quantity:  qty,
			AddedAt:   e.now(),
		})
	}

	return entity.Cart{UserId: c.UserId, Items: items}, nil
}

// UpdateQuantity adds delta (possibly negative) to the matching line. A line
// whose quantity drops below 1 is removed; one that would pass
// MaxLineQuantity is left unchanged.
func (e *Engine) UpdateQuantity(c entity.Cart, productId uuid.UUID, delta int, size, color string) (entity.Cart, error) {
	key := entity.CartKey{ProductId: productId, Size: size, Color: color}
	idx := indexOf(c.Items, key)
	if idx < 0 {
		return c, ErrItemNotInCart
	}

	if delta > MaxLineQuantity-c.Items[idx].Quantity {
		return c, ErrQuantityLimit
	}

	items := cloneItems(c.Items)
	items[idx].Quantity += delta
	if items[idx].Quantity < 1 {
		items = append(items[:idx], items[idx+1:]...)
	}

	return entity.Cart{UserId: c.UserId, Items: items}, nil
}

func (e *Engine) RemoveItem(c entity.Cart, productId uuid.UUID, size, color string) (entity.Cart, error) {
	key := entity.CartKey{ProductId: productId, Size: size, Color: color}
	idx := indexOf(c.Items, key)
	if idx < 0 {
		return c, ErrItemNotInCart
	}

	items := cloneItems(c.Items)
	items = append(items[:idx], items[idx+1:]...)
	return entity.Cart{UserId: c.UserId, Items: items}, nil
}

// View joins every line with its live product. Lines whose product is gone,
// or whose lookup failed, are kept with a nil Product.
func (e *Engine) View(ctx context.Context, c entity.Cart) entity.CartView {
	lines := make([]entity.CartLineView, 0, len(c.Items))
	for _, item := range c.Items {
		product, err := e.catalog.FindProduct(ctx, item.ProductId)
		if err != nil {
			product = nil
		}
		lines = append(lines, entity.CartLineView{CartLineItem: item, Product: product})
	}
	return entity.CartView{UserId: c.UserId, Lines: lines}
}

// Total sums unit price times quantity over resolvable lines.
func Total(view entity.CartView) int64 {
	var total int64
	for _, line := range view.Lines {
		if line.Product == nil {
			continue
		}
		total += line.Product.Price * int64(line.Quantity)
	}
	return total
}

// Snapshot prices the resolvable lines of a view for an order.
func Snapshot(view entity.CartView) []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(view.Lines))
	for _, line := range view.Lines {
		if line.Product == nil {
			continue
		}
		out = append(out, entity.OrderLine{
			ProductId: line.ProductId,
			Name:      line.Product.Name,
			Size:      line.Size,
			Color:     line.Color,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price,
		})
	}
	return out
}

func indexOf(items []entity.CartLineItem, key entity.CartKey) int {
	for i, item := range items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

func cloneItems(items []entity.CartLineItem) []entity.CartLineItem {
	out := make([]entity.CartLineItem, len(items))
	copy(out, items)
	return out
}
