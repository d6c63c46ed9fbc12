package dto

import (
	"time"

	"fashion-chatbot-be/pkg/dialogue"
)

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type ChatReplyDTO struct {
	Message    string            `json:"message"`
	Products   []*ProductDTO     `json:"products"`
	Actions    []dialogue.Action `json:"actions"`
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
}

type SendMessageResponse struct {
	Success  bool          `json:"success"`
	Response *ChatReplyDTO `json:"response"`
}

type ChatTurnDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatHistoryResponse struct {
	Success bool           `json:"success"`
	History []*ChatTurnDTO `json:"history"`
}

type BudgetDTO struct {
	Min int64 `json:"min" validate:"min=0"`
	Max int64 `json:"max" validate:"gtefield=Min"`
}

type PreferencesDTO struct {
	Size            string     `json:"size,omitempty" validate:"omitempty,max=10"`
	FavoriteColors  []string   `json:"favoriteColors,omitempty" validate:"max=20"`
	PreferredStyles []string   `json:"preferredStyles,omitempty" validate:"max=20"`
	Budget          *BudgetDTO `json:"budget,omitempty"`
}

type UpdatePreferencesRequest struct {
	Preferences PreferencesDTO `json:"preferences"`
}

type UserDTO struct {
	Id          string         `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	Preferences PreferencesDTO `json:"preferences"`
}

type UpdatePreferencesResponse struct {
	Success bool     `json:"success"`
	User    *UserDTO `json:"user"`
}
