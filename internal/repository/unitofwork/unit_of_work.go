package unitofwork

import (
	"context"

	"fashion-chatbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CartRepository() contract.CartRepository
	ChatTurnRepository() contract.ChatTurnRepository
	ProductRepository() contract.ProductRepository
	OrderRepository() contract.OrderRepository
}
