package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/pkg/events"
	"fashion-chatbot-be/pkg/payment/momo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	store   *fakeStore
	gateway *fakeGateway
	events  *recordingEvents
	queue   *recordingQueue
	svc     *checkoutService
	user    entity.User
	shirt   entity.Product
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	store := newFakeStore()
	gateway := &fakeGateway{
		partnerCode: "MOMO",
		createResp:  &momo.CreateResponse{ResultCode: 0, PayUrl: "https://test-payment.momo.vn/pay/abc"},
		validIPN:    true,
	}
	evts := &recordingEvents{}
	queue := &recordingQueue{}

	svc := NewCheckoutService(store, NewProductService(store, nil), gateway, evts, queue, "Thanh toán đơn hàng", logger.NewNopLogger()).(*checkoutService)
	clock := time.UnixMilli(1700000000000)
	svc.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}

	user := store.addUser(entity.User{Username: "lan", Email: "lan@example.com"})
	shirt := seedProduct(store, "Áo sơ mi trắng", entity.CategoryTops, 450000)
	store.setCart(user.Id, entity.CartLineItem{ProductId: shirt.Id, Size: "M", Color: "trắng", Quantity: 1})

	return &checkoutFixture{store: store, gateway: gateway, events: evts, queue: queue, svc: svc, user: user, shirt: shirt}
}

func (f *checkoutFixture) ipn(orderCode string, amount int64, resultCode int64) *momo.IPN {
	return &momo.IPN{
		PartnerCode: "MOMO",
		OrderId:     orderCode,
		RequestId:   orderCode,
		Amount:      momo.FlexInt(amount),
		TransId:     momo.FlexInt(4088878653),
		ResultCode:  momo.FlexInt(resultCode),
		Message:     "Giao dịch bị từ chối",
		Signature:   "sig",
	}
}

func TestCheckout_CODCompletesAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)

	resp, err := f.svc.Pay(context.Background(), f.user.Id, &dto.PaymentRequest{PaymentMethod: "COD"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "COD", resp.PaymentMethod)
	assert.Equal(t, int64(450000), resp.OrderTotal)
	assert.Empty(t, resp.PaymentUrl)

	assert.Empty(t, f.store.cart(f.user.Id))
	order, ok := f.store.order(resp.OrderId)
	require.True(t, ok)
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	assert.Equal(t, int64(450000), order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Áo sơ mi trắng", order.Items[0].Name)
	assert.NotNil(t, order.CompletedAt)

	assert.Equal(t, []string{events.OrderCompleted}, f.events.types())
	assert.Equal(t, []uuid.UUID{order.Id}, f.queue.orderIds())
	assert.Empty(t, f.gateway.created)
}

func TestCheckout_RejectsEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.store.setCart(f.user.Id)

	_, err := f.svc.Pay(context.Background(), f.user.Id, &dto.PaymentRequest{PaymentMethod: "COD"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.From(err).Kind)
	assert.Empty(t, f.store.orders())
}

func TestCheckout_RejectsCartWithOnlyVanishedProducts(t *testing.T) {
	f := newCheckoutFixture(t)
	f.store.deleteProduct(f.shirt.Id)

	_, err := f.svc.Pay(context.Background(), f.user.Id, &dto.PaymentRequest{PaymentMethod: "MOMO"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.From(err).Kind)
	assert.Empty(t, f.gateway.created)
}

func TestCheckout_RejectsUnknownMethod(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.Pay(context.Background(), f.user.Id, &dto.PaymentRequest{PaymentMethod: "VISA"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.From(err).Kind)
	assert.Len(t, f.store.cart(f.user.Id), 1)
}

func TestCheckout_MomoAwaitsThenCallbackCompletes(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "MOMO"})
	require.NoError(t, err)
	assert.Equal(t, "MOMO", resp.PaymentMethod)
	assert.Equal(t, "https://test-payment.momo.vn/pay/abc", resp.PaymentUrl)
	assert.Equal(t, int64(450000), resp.Amount)
	assert.Regexp(t, `^MOMO\d{13}$`, resp.OrderId)
	assert.Equal(t, []string{resp.OrderId}, f.gateway.created)

	order, ok := f.store.order(resp.OrderId)
	require.True(t, ok)
	assert.Equal(t, entity.OrderStatusAwaitingGatewayRedirect, order.Status)
	assert.Len(t, f.store.cart(f.user.Id), 1, "cart is kept until the callback")
	assert.Empty(t, f.events.types())

	require.NoError(t, f.svc.HandleCallback(ctx, f.ipn(resp.OrderId, 450000, 0)))

	order, _ = f.store.order(resp.OrderId)
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	require.NotNil(t, order.ExternalTxnId)
	assert.Equal(t, "4088878653", *order.ExternalTxnId)
	assert.Empty(t, f.store.cart(f.user.Id))
	assert.Equal(t, []string{events.OrderCompleted}, f.events.types())
}

func TestCheckout_DuplicateCallbackIsNoop(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	resp, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "EXTERNAL_WALLET"})
	require.NoError(t, err)

	require.NoError(t, f.svc.HandleCallback(ctx, f.ipn(resp.OrderId, 450000, 0)))
	first, _ := f.store.order(resp.OrderId)

	// the user refills the cart; a replayed success must not clear it again
	f.store.setCart(f.user.Id, entity.CartLineItem{ProductId: f.shirt.Id, Quantity: 2})
	require.NoError(t, f.svc.HandleCallback(ctx, f.ipn(resp.OrderId, 450000, 0)))
	require.NoError(t, f.svc.HandleCallback(ctx, f.ipn(resp.OrderId, 450000, 1006)))

	again, _ := f.store.order(resp.OrderId)
	assert.Equal(t, first, again)
	assert.Len(t, f.store.cart(f.user.Id), 1)
	assert.Len(t, f.events.types(), 1)
}

func TestCheckout_CallbackWithBadSignature(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	resp, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "MOMO"})
	require.NoError(t, err)

	f.gateway.validIPN = false
	err = f.svc.HandleCallback(ctx, f.ipn(resp.OrderId, 450000, 0))
	assert.True(t, IsInvalidSignature(err))

	order, _ := f.store.order(resp.OrderId)
	assert.Equal(t, entity.OrderStatusAwaitingGatewayRedirect, order.Status)
	assert.Len(t, f.store.cart(f.user.Id), 1)
}

func TestCheckout_CallbackDeclined(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	resp, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "MOMO"})
	require.NoError(t, err)

	require.NoError(t, f.svc.HandleCallback(ctx, f.ipn(resp.OrderId, 450000, 1006)))

	order, _ := f.store.order(resp.OrderId)
	assert.Equal(t, entity.OrderStatusFailed, order.Status)
	assert.Contains(t, order.FailureReason, "1006")
	assert.Len(t, f.store.cart(f.user.Id), 1)
	assert.Equal(t, []string{events.OrderFailed}, f.events.types())
}

func TestCheckout_CallbackIgnoresUnknownOrderAndAmountMismatch(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	resp, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "MOMO"})
	require.NoError(t, err)

	require.NoError(t, f.svc.HandleCallback(ctx, f.ipn("MOMO0000000000000", 450000, 0)))
	require.NoError(t, f.svc.HandleCallback(ctx, f.ipn(resp.OrderId, 1000, 0)))

	order, _ := f.store.order(resp.OrderId)
	assert.Equal(t, entity.OrderStatusAwaitingGatewayRedirect, order.Status)
	assert.Len(t, f.store.cart(f.user.Id), 1)
}

func TestCheckout_GatewayFailureMarksOrderFailed(t *testing.T) {
	f := newCheckoutFixture(t)
	f.gateway.createErr = errors.Join(momo.ErrGatewayUnavailable, context.DeadlineExceeded)

	_, err := f.svc.Pay(context.Background(), f.user.Id, &dto.PaymentRequest{PaymentMethod: "MOMO"})
	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.KindExternalGateway, appErr.Kind)
	assert.Equal(t, 502, appErr.Status())

	orders := f.store.orders()
	require.Len(t, orders, 1)
	assert.Equal(t, entity.OrderStatusFailed, orders[0].Status)
	assert.NotEmpty(t, orders[0].FailureReason)
	assert.Len(t, f.store.cart(f.user.Id), 1)
	assert.Equal(t, []string{events.OrderFailed}, f.events.types())
}

func TestCheckout_OrderCodesAreUnique(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	frozen := time.UnixMilli(1700000000000)
	f.svc.now = func() time.Time { return frozen }

	first, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "COD"})
	require.NoError(t, err)
	f.store.setCart(f.user.Id, entity.CartLineItem{ProductId: f.shirt.Id, Quantity: 1})
	second, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "COD"})
	require.NoError(t, err)

	assert.Equal(t, "MOMO1700000000000", first.OrderId)
	assert.Equal(t, "MOMO1700000000001", second.OrderId)
}

func TestCheckout_CheckStatusIsReadOnly(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	resp, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "MOMO"})
	require.NoError(t, err)
	f.gateway.queryResp = &momo.QueryResponse{OrderId: resp.OrderId, ResultCode: 0, Message: "Thành công."}

	status, err := f.svc.CheckStatus(ctx, f.user.Id, resp.OrderId)
	require.NoError(t, err)
	assert.True(t, status.Success)
	assert.Equal(t, resp.OrderId, status.TransactionStatus.OrderId)

	order, _ := f.store.order(resp.OrderId)
	assert.Equal(t, entity.OrderStatusAwaitingGatewayRedirect, order.Status)

	_, err = f.svc.CheckStatus(ctx, uuid.New(), resp.OrderId)
	assert.Equal(t, apperror.KindNotFound, apperror.From(err).Kind)
}

func (f *checkoutFixture) insertOrder(t *testing.T, code string, method entity.PaymentMethod) entity.Order {
	t.Helper()
	o := entity.Order{
		Id:            uuid.New(),
		OrderCode:     code,
		UserId:        f.user.Id,
		TotalAmount:   450000,
		PaymentMethod: method,
		Status:        entity.OrderStatusPendingPayment,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, fakeOrderRepo{f.store}.Create(context.Background(), &o))
	return o
}

func TestCheckout_CancelOnlyPendingPayment(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	pending := f.insertOrder(t, "ORDER1", entity.PaymentMethodCOD)

	resp, err := f.svc.CancelOrder(ctx, f.user.Id, pending.Id)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Order.Status)
	assert.Len(t, f.store.cart(f.user.Id), 1)
	assert.Equal(t, []string{events.OrderCancelled}, f.events.types())

	_, err = f.svc.CancelOrder(ctx, f.user.Id, pending.Id)
	assert.Equal(t, apperror.KindStateConflict, apperror.From(err).Kind)

	_, err = f.svc.CancelOrder(ctx, uuid.New(), pending.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.From(err).Kind)
}

func TestCheckout_MomoOrderCannotBeCancelled(t *testing.T) {
	f := newCheckoutFixture(t)
	pending := f.insertOrder(t, "MOMO1", entity.PaymentMethodMomo)

	_, err := f.svc.CancelOrder(context.Background(), f.user.Id, pending.Id)
	require.Error(t, err)
	assert.Equal(t, apperror.KindStateConflict, apperror.From(err).Kind)

	order, _ := f.store.order("MOMO1")
	assert.Equal(t, entity.OrderStatusPendingPayment, order.Status)
	assert.Empty(t, f.events.types())
}

// hookedGateway runs beforeCreate while the creation request is in flight.
type hookedGateway struct {
	*fakeGateway
	beforeCreate func(orderId string)
}

func (g *hookedGateway) CreatePayment(ctx context.Context, orderId string, amount int64) (*momo.CreateResponse, error) {
	g.beforeCreate(orderId)
	return g.fakeGateway.CreatePayment(ctx, orderId, amount)
}

func TestCheckout_CancelWhileGatewayCallInFlight(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	var cancelErr error
	f.svc.gateway = &hookedGateway{fakeGateway: f.gateway, beforeCreate: func(orderId string) {
		order, ok := f.store.order(orderId)
		require.True(t, ok)
		_, cancelErr = f.svc.CancelOrder(ctx, f.user.Id, order.Id)
	}}

	resp, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "MOMO"})
	require.NoError(t, err)
	require.Error(t, cancelErr)
	assert.Equal(t, apperror.KindStateConflict, apperror.From(cancelErr).Kind)

	order, _ := f.store.order(resp.OrderId)
	assert.Equal(t, entity.OrderStatusAwaitingGatewayRedirect, order.Status)

	require.NoError(t, f.svc.HandleCallback(ctx, f.ipn(resp.OrderId, 450000, 0)))
	order, _ = f.store.order(resp.OrderId)
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	assert.Empty(t, f.store.cart(f.user.Id))
}

func TestCheckout_OrderSettledWhileGatewayCallInFlight(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.svc.gateway = &hookedGateway{fakeGateway: f.gateway, beforeCreate: func(orderId string) {
		order, ok := f.store.order(orderId)
		require.True(t, ok)
		order.Status = entity.OrderStatusFailed
		require.NoError(t, fakeOrderRepo{f.store}.Update(ctx, &order))
	}}

	resp, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "MOMO"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, apperror.KindStateConflict, apperror.From(err).Kind)

	orders := f.store.orders()
	require.Len(t, orders, 1)
	assert.Equal(t, entity.OrderStatusFailed, orders[0].Status)
	assert.Empty(t, orders[0].PaymentUrl)
	assert.Len(t, f.store.cart(f.user.Id), 1)
}

func TestCheckout_ListOrdersNewestFirst(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	first, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "COD"})
	require.NoError(t, err)
	f.store.setCart(f.user.Id, entity.CartLineItem{ProductId: f.shirt.Id, Quantity: 2})
	second, err := f.svc.Pay(ctx, f.user.Id, &dto.PaymentRequest{PaymentMethod: "COD"})
	require.NoError(t, err)

	list, err := f.svc.ListOrders(ctx, f.user.Id)
	require.NoError(t, err)
	require.Len(t, list.Orders, 2)
	assert.Equal(t, second.OrderId, list.Orders[0].OrderCode)
	assert.Equal(t, first.OrderId, list.Orders[1].OrderCode)
	assert.Equal(t, int64(900000), list.Orders[0].TotalAmount)
}
