package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id          uuid.UUID
	Username    string
	Email       string
	Preferences UserPreferences
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayName falls back to the generic Vietnamese "you" when no username is set.
func (u *User) DisplayName() string {
	if u == nil || u.Username == "" {
		return "bạn"
	}
	return u.Username
}

type UserPreferences struct {
	Size            string
	FavoriteColors  []string
	PreferredStyles []string
	Budget          *Budget
}

// Budget is an inclusive VND price range.
type Budget struct {
	Min int64
	Max int64
}
