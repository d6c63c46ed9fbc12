package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatTurn struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_turns_user_time,priority:1"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null;index:idx_chat_turns_user_time,priority:2"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
