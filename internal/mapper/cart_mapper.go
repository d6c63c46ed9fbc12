package mapper

import (
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/model"

	"github.com/google/uuid"
)

type CartMapper struct{}

func NewCartMapper() *CartMapper {
	return &CartMapper{}
}

// ToEntity assumes rows are already sorted by position.
func (m *CartMapper) ToEntity(userId uuid.UUID, rows []*model.CartItem) *entity.Cart {
	cart := &entity.Cart{UserId: userId, Items: make([]entity.CartLineItem, 0, len(rows))}
	for _, r := range rows {
		cart.Items = append(cart.Items, entity.CartLineItem{
			ProductId: r.ProductId,
			Size:      r.Size,
			Color:     r.Color,
			Quantity:  r.Quantity,
			AddedAt:   r.AddedAt,
		})
	}
	return cart
}

func (m *CartMapper) ToModels(cart *entity.Cart) []*model.CartItem {
	rows := make([]*model.CartItem, 0, len(cart.Items))
	for i, item := range cart.Items {
		rows = append(rows, &model.CartItem{
			UserId:    cart.UserId,
			ProductId: item.ProductId,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			Position:  i,
			AddedAt:   item.AddedAt,
		})
	}
	return rows
}
