package contract

import (
	"context"

	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs entity.UserPreferences) error
}
