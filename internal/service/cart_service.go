package service

import (
	"context"
	"errors"
	"fmt"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/repository/specification"
	"fashion-chatbot-be/internal/repository/unitofwork"
	"fashion-chatbot-be/pkg/cart"

	"github.com/google/uuid"
)

type ICartService interface {
	GetCart(ctx context.Context, userId uuid.UUID) (*dto.CartResponse, error)
	AddItem(ctx context.Context, userId uuid.UUID, req *dto.AddToCartRequest) (*dto.CartResponse, error)
	UpdateItem(ctx context.Context, userId uuid.UUID, req *dto.UpdateCartRequest) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, userId uuid.UUID, req *dto.RemoveCartRequest) (*dto.CartResponse, error)
}

type cartService struct {
	uowFactory unitofwork.RepositoryFactory
	engine     *cart.Engine
	logger     logger.ILogger
}

func NewCartService(uowFactory unitofwork.RepositoryFactory, catalog cart.Catalog, log logger.ILogger) ICartService {
	return &cartService{
		uowFactory: uowFactory,
		engine:     cart.NewEngine(catalog),
		logger:     log,
	}
}

func (s *cartService) GetCart(ctx context.Context, userId uuid.UUID) (*dto.CartResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	c, err := uow.CartRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, *c, ""), nil
}

func (s *cartService) AddItem(ctx context.Context, userId uuid.UUID, req *dto.AddToCartRequest) (*dto.CartResponse, error) {
	productId, err := uuid.Parse(req.ProductId)
	if err != nil {
		return nil, apperror.Validation("productId không hợp lệ", err)
	}

	updated, err := s.mutate(ctx, userId, func(c entity.Cart) (entity.Cart, error) {
		return s.engine.AddItem(ctx, c, productId, req.Quantity, req.Size, req.Color)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CART", "Item added", map[string]interface{}{
		"user_id":    userId.String(),
		"product_id": productId.String(),
		"quantity":   req.Quantity,
	})
	return s.render(ctx, updated, "Đã thêm sản phẩm vào giỏ hàng"), nil
}

func (s *cartService) UpdateItem(ctx context.Context, userId uuid.UUID, req *dto.UpdateCartRequest) (*dto.CartResponse, error) {
	productId, err := uuid.Parse(req.ProductId)
	if err != nil {
		return nil, apperror.Validation("productId không hợp lệ", err)
	}

	updated, err := s.mutate(ctx, userId, func(c entity.Cart) (entity.Cart, error) {
		return s.engine.UpdateQuantity(c, productId, req.Quantity, req.Size, req.Color)
	})
	if err != nil {
		return nil, err
	}
	return s.render(ctx, updated, "Đã cập nhật giỏ hàng"), nil
}

func (s *cartService) RemoveItem(ctx context.Context, userId uuid.UUID, req *dto.RemoveCartRequest) (*dto.CartResponse, error) {
	productId, err := uuid.Parse(req.ProductId)
	if err != nil {
		return nil, apperror.Validation("productId không hợp lệ", err)
	}

	updated, err := s.mutate(ctx, userId, func(c entity.Cart) (entity.Cart, error) {
		return s.engine.RemoveItem(c, productId, req.Size, req.Color)
	})
	if err != nil {
		return nil, err
	}
	return s.render(ctx, updated, "Đã xóa sản phẩm khỏi giỏ hàng"), nil
}

// mutate serializes cart writes per user by locking the user row for the
// whole read-modify-write.
func (s *cartService) mutate(ctx context.Context, userId uuid.UUID, op func(entity.Cart) (entity.Cart, error)) (entity.Cart, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return entity.Cart{}, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.ForUpdate{})
	if err != nil {
		return entity.Cart{}, err
	}
	if user == nil {
		return entity.Cart{}, apperror.NotFound("Không tìm thấy người dùng")
	}

	current, err := uow.CartRepository().FindByUser(ctx, userId)
	if err != nil {
		return entity.Cart{}, err
	}

	updated, err := op(*current)
	if err != nil {
		return entity.Cart{}, mapCartError(err)
	}

	if err := uow.CartRepository().Replace(ctx, &updated); err != nil {
		return entity.Cart{}, err
	}
	if err := uow.Commit(); err != nil {
		return entity.Cart{}, err
	}
	return updated, nil
}

func (s *cartService) render(ctx context.Context, c entity.Cart, message string) *dto.CartResponse {
	view := s.engine.View(ctx, c)
	return toCartResponse(view, cart.Total(view), message)
}

func mapCartError(err error) error {
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		return apperror.NotFound("Không tìm thấy sản phẩm")
	case errors.Is(err, cart.ErrItemNotInCart):
		return apperror.NotFound("Sản phẩm không có trong giỏ hàng")
	case errors.Is(err, cart.ErrQuantityLimit):
		return apperror.Validation(fmt.Sprintf("Số lượng mỗi sản phẩm tối đa là %d", cart.MaxLineQuantity), err)
	}
	return err
}
