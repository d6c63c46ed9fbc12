package contract

import (
	"context"

	"fashion-chatbot-be/internal/entity"

	"github.com/google/uuid"
)

type ChatTurnRepository interface {
	Append(ctx context.Context, turns ...entity.ChatTurn) error
	// Trim deletes everything but the newest keep turns of a user.
	Trim(ctx context.Context, userId uuid.UUID, keep int) error
	FindByUser(ctx context.Context, userId uuid.UUID) ([]entity.ChatTurn, error)
}
