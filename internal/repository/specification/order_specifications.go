package specification

import "gorm.io/gorm"

type ByOrderCode struct {
	Code string
}

func (s ByOrderCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_code = ?", s.Code)
}
