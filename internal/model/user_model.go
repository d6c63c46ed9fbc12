package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserPreferences struct {
	Size            string   `json:"size,omitempty"`
	FavoriteColors  []string `json:"favoriteColors,omitempty"`
	PreferredStyles []string `json:"preferredStyles,omitempty"`
	Budget          *Budget  `json:"budget,omitempty"`
}

type Budget struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type User struct {
	Id          uuid.UUID                           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username    string                              `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email       string                              `gorm:"type:varchar(255);uniqueIndex;not null"`
	Preferences datatypes.JSONType[UserPreferences] `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt   time.Time                           `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                           `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
