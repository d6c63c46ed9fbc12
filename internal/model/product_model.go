package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string                      `gorm:"type:varchar(255);not null"`
	Category    string                      `gorm:"type:varchar(50);not null;index"`
	SubCategory string                      `gorm:"type:varchar(100);not null"`
	Gender      string                      `gorm:"type:varchar(20);not null;index"`
	Description string                      `gorm:"type:text;not null"`
	Price       int64                       `gorm:"not null;index"`
	Sizes       datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	Colors      datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	Material    string                      `gorm:"type:varchar(100)"`
	Occasions   datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	Styles      datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	ImageURL    string                      `gorm:"type:text"`
	InStock     bool                        `gorm:"not null;default:true;index"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
