package contract

import (
	"context"

	"fashion-chatbot-be/internal/entity"

	"github.com/google/uuid"
)

type CartRepository interface {
	FindByUser(ctx context.Context, userId uuid.UUID) (*entity.Cart, error)
	// Replace overwrites the user's stored lines with cart.Items.
	Replace(ctx context.Context, cart *entity.Cart) error
	Clear(ctx context.Context, userId uuid.UUID) error
}
