package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OrderLine struct {
	ProductId uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
}

type Order struct {
	Id            uuid.UUID                      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderCode     string                         `gorm:"type:varchar(100);uniqueIndex;not null"`
	UserId        uuid.UUID                      `gorm:"type:uuid;not null;index"`
	Items         datatypes.JSONSlice[OrderLine] `gorm:"type:jsonb;not null"`
	TotalAmount   int64                          `gorm:"not null"`
	PaymentMethod string                         `gorm:"type:varchar(20);not null"`
	Status        string                         `gorm:"type:varchar(40);not null;index"`
	ExternalTxnId *string                        `gorm:"type:varchar(100)"`
	PaymentUrl    string                         `gorm:"type:text"`
	FailureReason string                         `gorm:"type:text"`
	CreatedAt     time.Time                      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time                      `gorm:"autoUpdateTime"`
	CompletedAt   *time.Time
}

func (Order) TableName() string {
	return "orders"
}
