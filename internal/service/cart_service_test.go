package service

import (
	"context"
	"testing"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (*fakeStore, ICartService, entity.User, entity.Product) {
	t.Helper()
	store := newFakeStore()
	user := store.addUser(entity.User{Username: "lan", Email: "lan@example.com"})
	product := seedProduct(store, "Áo sơ mi trắng", entity.CategoryTops, 450000)
	svc := NewCartService(store, NewProductService(store, nil), logger.NewNopLogger())
	return store, svc, user, product
}

func TestCartService_AddItemMergesVariant(t *testing.T) {
	store, svc, user, product := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, user.Id, &dto.AddToCartRequest{ProductId: product.Id.String(), Quantity: 1, Size: "M", Color: "trắng"})
	require.NoError(t, err)
	resp, err := svc.AddItem(ctx, user.Id, &dto.AddToCartRequest{ProductId: product.Id.String(), Quantity: 2, Size: "M", Color: "trắng"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.CartCount)
	require.Len(t, resp.Cart, 1)
	assert.Equal(t, 3, resp.Cart[0].Quantity)
	assert.Equal(t, int64(1350000), resp.Cart[0].Subtotal)
	assert.Equal(t, int64(1350000), resp.Total)

	resp, err = svc.AddItem(ctx, user.Id, &dto.AddToCartRequest{ProductId: product.Id.String(), Size: "L", Color: "trắng"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.CartCount)
	assert.Equal(t, 1, resp.Cart[1].Quantity)
	assert.Len(t, store.cart(user.Id), 2)
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	store, svc, user, _ := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), user.Id, &dto.AddToCartRequest{ProductId: uuid.NewString(), Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.From(err).Kind)
	assert.Empty(t, store.cart(user.Id))
}

func TestCartService_UnknownUser(t *testing.T) {
	_, svc, _, product := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), uuid.New(), &dto.AddToCartRequest{ProductId: product.Id.String(), Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.From(err).Kind)
}

func TestCartService_UpdateItemDelta(t *testing.T) {
	store, svc, user, product := newCartFixture(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, user.Id, &dto.AddToCartRequest{ProductId: product.Id.String(), Quantity: 2, Size: "M"})
	require.NoError(t, err)

	resp, err := svc.UpdateItem(ctx, user.Id, &dto.UpdateCartRequest{ProductId: product.Id.String(), Quantity: 3, Size: "M"})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Cart[0].Quantity)

	resp, err = svc.UpdateItem(ctx, user.Id, &dto.UpdateCartRequest{ProductId: product.Id.String(), Quantity: -5, Size: "M"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CartCount)
	assert.Empty(t, store.cart(user.Id))
}

func TestCartService_UpdateMissingLine(t *testing.T) {
	_, svc, user, product := newCartFixture(t)

	_, err := svc.UpdateItem(context.Background(), user.Id, &dto.UpdateCartRequest{ProductId: product.Id.String(), Quantity: 1, Size: "XL"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.From(err).Kind)
}

func TestCartService_RemoveItem(t *testing.T) {
	_, svc, user, product := newCartFixture(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, user.Id, &dto.AddToCartRequest{ProductId: product.Id.String(), Quantity: 1, Color: "đen"})
	require.NoError(t, err)

	_, err = svc.RemoveItem(ctx, user.Id, &dto.RemoveCartRequest{ProductId: product.Id.String(), Color: "trắng"})
	require.Error(t, err)

	resp, err := svc.RemoveItem(ctx, user.Id, &dto.RemoveCartRequest{ProductId: product.Id.String(), Color: "đen"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CartCount)
	assert.NotNil(t, resp.Cart)
}

func TestCartService_GetCartKeepsVanishedProduct(t *testing.T) {
	store, svc, user, product := newCartFixture(t)
	ctx := context.Background()
	gone := seedProduct(store, "Váy cũ", entity.CategoryDresses, 999000)
	_, err := svc.AddItem(ctx, user.Id, &dto.AddToCartRequest{ProductId: product.Id.String(), Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, user.Id, &dto.AddToCartRequest{ProductId: gone.Id.String(), Quantity: 1})
	require.NoError(t, err)
	store.deleteProduct(gone.Id)

	resp, err := svc.GetCart(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, resp.Cart, 2)
	assert.NotNil(t, resp.Cart[0].Product)
	assert.Nil(t, resp.Cart[1].Product)
	assert.Equal(t, gone.Id, resp.Cart[1].ProductId)
	assert.Equal(t, int64(450000), resp.Total)
}

func TestCartService_QuantityLimit(t *testing.T) {
	store, svc, user, product := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, user.Id, &dto.AddToCartRequest{ProductId: product.Id.String(), Quantity: 999, Size: "M"})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, user.Id, &dto.AddToCartRequest{ProductId: product.Id.String(), Quantity: 2, Size: "M"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.From(err).Kind)

	_, err = svc.UpdateItem(ctx, user.Id, &dto.UpdateCartRequest{ProductId: product.Id.String(), Quantity: 5, Size: "M"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.From(err).Kind)

	lines := store.cart(user.Id)
	require.Len(t, lines, 1)
	assert.Equal(t, 999, lines[0].Quantity)
}
