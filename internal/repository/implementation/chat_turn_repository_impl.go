package implementation

import (
	"context"

	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/mapper"
	"fashion-chatbot-be/internal/model"
	"fashion-chatbot-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatTurnRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatTurnMapper
}

func NewChatTurnRepository(db *gorm.DB) contract.ChatTurnRepository {
	return &ChatTurnRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatTurnMapper(),
	}
}

func (r *ChatTurnRepositoryImpl) Append(ctx context.Context, turns ...entity.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}
	rows := make([]*model.ChatTurn, len(turns))
	for i, t := range turns {
		rows[i] = r.mapper.ToModel(t)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *ChatTurnRepositoryImpl) Trim(ctx context.Context, userId uuid.UUID, keep int) error {
	newest := r.db.Model(&model.ChatTurn{}).
		Select("id").
		Where("user_id = ?", userId).
		Order("timestamp DESC, id DESC").
		Limit(keep)

	return r.db.WithContext(ctx).
		Where("user_id = ? AND id NOT IN (?)", userId, newest).
		Delete(&model.ChatTurn{}).Error
}

func (r *ChatTurnRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) ([]entity.ChatTurn, error) {
	var rows []*model.ChatTurn
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("timestamp ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}
