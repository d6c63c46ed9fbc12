package dto

import (
	"github.com/google/uuid"
)

type ProductDTO struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory"`
	Gender      string    `json:"gender"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	Material    string    `json:"material,omitempty"`
	Occasions   []string  `json:"occasions"`
	Style       []string  `json:"style"`
	ImageUrl    string    `json:"imageUrl,omitempty"`
	InStock     bool      `json:"inStock"`
}

type ProductListQuery struct {
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=50"`
	Category string `query:"category" validate:"omitempty,oneof=tops bottoms dresses outerwear accessories shoes"`
	Style    string `query:"style"`
	Exclude  string `query:"exclude" validate:"omitempty,uuid"`
}

type ProductListResponse struct {
	Success  bool          `json:"success"`
	Products []*ProductDTO `json:"products"`
}

type ProductDetailResponse struct {
	Success bool        `json:"success"`
	Product *ProductDTO `json:"product"`
}
