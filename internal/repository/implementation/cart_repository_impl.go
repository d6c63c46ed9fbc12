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

type CartRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CartMapper
}

func NewCartRepository(db *gorm.DB) contract.CartRepository {
	return &CartRepositoryImpl{
		db:     db,
		mapper: mapper.NewCartMapper(),
	}
}

func (r *CartRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) (*entity.Cart, error) {
	var rows []*model.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(userId, rows), nil
}

func (r *CartRepositoryImpl) Replace(ctx context.Context, cart *entity.Cart) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", cart.UserId).Delete(&model.CartItem{}).Error; err != nil {
		return err
	}
	rows := r.mapper.ToModels(cart)
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

func (r *CartRepositoryImpl) Clear(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.CartItem{}).Error
}
