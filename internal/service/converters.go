package service

import (
	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/entity"
)

func toProductDTO(p *entity.Product) *dto.ProductDTO {
	if p == nil {
		return nil
	}
	return &dto.ProductDTO{
		Id:          p.Id,
		Name:        p.Name,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Gender:      p.Gender,
		Description: p.Description,
		Price:       p.Price,
		Sizes:       orEmpty(p.Sizes),
		Colors:      orEmpty(p.Colors),
		Material:    p.Material,
		Occasions:   orEmpty(p.Occasions),
		Style:       orEmpty(p.Styles),
		ImageUrl:    p.ImageURL,
		InStock:     p.InStock,
	}
}

func toProductDTOs(products []*entity.Product) []*dto.ProductDTO {
	out := make([]*dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out
}

func toCartResponse(view entity.CartView, total int64, message string) *dto.CartResponse {
	lines := make([]*dto.CartLineDTO, 0, len(view.Lines))
	for _, l := range view.Lines {
		line := &dto.CartLineDTO{
			ProductId: l.ProductId,
			Product:   toProductDTO(l.Product),
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
			AddedAt:   l.AddedAt,
		}
		if l.Product != nil {
			line.Subtotal = l.Product.Price * int64(l.Quantity)
		}
		lines = append(lines, line)
	}
	return &dto.CartResponse{
		Success:   true,
		Message:   message,
		CartCount: len(lines),
		Cart:      lines,
		Total:     total,
	}
}

func toOrderDTO(o *entity.Order) *dto.OrderDTO {
	items := make([]*dto.OrderLineDTO, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, &dto.OrderLineDTO{
			ProductId: l.ProductId,
			Name:      l.Name,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return &dto.OrderDTO{
		Id:            o.Id,
		OrderCode:     o.OrderCode,
		Status:        o.Status.String(),
		PaymentMethod: string(o.PaymentMethod),
		TotalAmount:   o.TotalAmount,
		Items:         items,
		PaymentUrl:    o.PaymentUrl,
		FailureReason: o.FailureReason,
		CreatedAt:     o.CreatedAt,
		CompletedAt:   o.CompletedAt,
	}
}

func toPreferencesDTO(p entity.UserPreferences) dto.PreferencesDTO {
	out := dto.PreferencesDTO{
		Size:            p.Size,
		FavoriteColors:  p.FavoriteColors,
		PreferredStyles: p.PreferredStyles,
	}
	if p.Budget != nil {
		out.Budget = &dto.BudgetDTO{Min: p.Budget.Min, Max: p.Budget.Max}
	}
	return out
}

func toPreferencesEntity(p dto.PreferencesDTO) entity.UserPreferences {
	out := entity.UserPreferences{
		Size:            p.Size,
		FavoriteColors:  p.FavoriteColors,
		PreferredStyles: p.PreferredStyles,
	}
	if p.Budget != nil {
		out.Budget = &entity.Budget{Min: p.Budget.Min, Max: p.Budget.Max}
	}
	return out
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
