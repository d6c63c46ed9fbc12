package mapper

import (
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/model"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	return &entity.Product{
		Id:          p.Id,
		Name:        p.Name,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Gender:      p.Gender,
		Description: p.Description,
		Price:       p.Price,
		Sizes:       []string(p.Sizes),
		Colors:      []string(p.Colors),
		Material:    p.Material,
		Occasions:   []string(p.Occasions),
		Styles:      []string(p.Styles),
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}
	return &model.Product{
		Id:          p.Id,
		Name:        p.Name,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Gender:      p.Gender,
		Description: p.Description,
		Price:       p.Price,
		Sizes:       nonNil(p.Sizes),
		Colors:      nonNil(p.Colors),
		Material:    p.Material,
		Occasions:   nonNil(p.Occasions),
		Styles:      nonNil(p.Styles),
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
