package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryTops        = "tops"
	CategoryBottoms     = "bottoms"
	CategoryDresses     = "dresses"
	CategoryOuterwear   = "outerwear"
	CategoryAccessories = "accessories"
	CategoryShoes       = "shoes"
)

type Product struct {
	Id          uuid.UUID
	Name        string
	Category    string
	SubCategory string
	Gender      string
	Description string
	Price       int64
	Sizes       []string
	Colors      []string
	Material    string
	Occasions   []string
	Styles      []string
	ImageURL    string
	InStock     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter is the structured catalog query derived from a chat turn or a
// listing endpoint. Empty slices and nil bounds mean "no constraint".
type ProductFilter struct {
	Categories  []string
	Colors      []string
	Sizes       []string
	Occasions   []string
	Genders     []string
	Styles      []string
	MinPrice    *int64
	MaxPrice    *int64
	InStockOnly bool
	Exclude     *uuid.UUID
	Limit       int
}
