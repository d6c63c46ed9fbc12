package specification

import (
	"fashion-chatbot-be/internal/entity"

	"gorm.io/gorm"
)

// MatchesProductFilter translates a catalog filter into SQL. Array attributes
// are jsonb columns, so "any of" uses jsonb_exists_any.
type MatchesProductFilter struct {
	Filter entity.ProductFilter
}

func (s MatchesProductFilter) Apply(db *gorm.DB) *gorm.DB {
	f := s.Filter
	if len(f.Categories) > 0 {
		db = db.Where("category IN ?", f.Categories)
	}
	if len(f.Genders) > 0 {
		db = db.Where("gender IN ?", f.Genders)
	}
	if len(f.Colors) > 0 {
		db = db.Where("jsonb_exists_any(colors, ARRAY[?]::text[])", f.Colors)
	}
	if len(f.Sizes) > 0 {
		db = db.Where("jsonb_exists_any(sizes, ARRAY[?]::text[])", f.Sizes)
	}
	if len(f.Occasions) > 0 {
		db = db.Where("jsonb_exists_any(occasions, ARRAY[?]::text[])", f.Occasions)
	}
	if len(f.Styles) > 0 {
		db = db.Where("jsonb_exists_any(styles, ARRAY[?]::text[])", f.Styles)
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", *f.MaxPrice)
	}
	if f.InStockOnly {
		db = db.Where("in_stock = ?", true)
	}
	if f.Exclude != nil {
		db = db.Where("id <> ?", *f.Exclude)
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}
	return db
}
