package mapper

import (
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/model"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}
	items := make([]entity.OrderLine, len(o.Items))
	for i, l := range o.Items {
		items[i] = entity.OrderLine(l)
	}
	return &entity.Order{
		Id:            o.Id,
		OrderCode:     o.OrderCode,
		UserId:        o.UserId,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: entity.PaymentMethod(o.PaymentMethod),
		Status:        entity.OrderStatus(o.Status),
		ExternalTxnId: o.ExternalTxnId,
		PaymentUrl:    o.PaymentUrl,
		FailureReason: o.FailureReason,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		CompletedAt:   o.CompletedAt,
	}
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}
	items := make([]model.OrderLine, len(o.Items))
	for i, l := range o.Items {
		items[i] = model.OrderLine(l)
	}
	return &model.Order{
		Id:            o.Id,
		OrderCode:     o.OrderCode,
		UserId:        o.UserId,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		ExternalTxnId: o.ExternalTxnId,
		PaymentUrl:    o.PaymentUrl,
		FailureReason: o.FailureReason,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		CompletedAt:   o.CompletedAt,
	}
}

func (m *OrderMapper) ToEntities(orders []*model.Order) []*entity.Order {
	out := make([]*entity.Order, len(orders))
	for i, o := range orders {
		out[i] = m.ToEntity(o)
	}
	return out
}
