package model

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_line,priority:1"`
	ProductId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_line,priority:2"`
	Size      string    `gorm:"type:varchar(20);not null;default:'';uniqueIndex:idx_cart_line,priority:3"`
	Color     string    `gorm:"type:varchar(50);not null;default:'';uniqueIndex:idx_cart_line,priority:4"`
	Quantity  int       `gorm:"not null"`
	Position  int       `gorm:"not null;default:0"`
	AddedAt   time.Time `gorm:"not null"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
