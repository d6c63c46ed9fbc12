package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/repository/specification"
	"fashion-chatbot-be/internal/repository/unitofwork"
	"fashion-chatbot-be/pkg/cart"
	"fashion-chatbot-be/pkg/checkout"
	"fashion-chatbot-be/pkg/database"
	"fashion-chatbot-be/pkg/events"
	"fashion-chatbot-be/pkg/payment/momo"

	"github.com/google/uuid"
)

const (
	orderCodeConstraint = "idx_orders_order_code"
	defaultOrderPrefix  = "ORDER"
	orderListLimit      = 50
)

// PaymentGateway is the wallet adapter; *momo.Client satisfies it.
type PaymentGateway interface {
	PartnerCode() string
	CreatePayment(ctx context.Context, orderId string, amount int64) (*momo.CreateResponse, error)
	QueryStatus(ctx context.Context, orderId string) (*momo.QueryResponse, error)
	VerifyIPN(n *momo.IPN) bool
}

// EventPublisher sends domain events to the external bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ICheckoutService interface {
	Pay(ctx context.Context, userId uuid.UUID, req *dto.PaymentRequest) (*dto.PaymentResponse, error)
	HandleCallback(ctx context.Context, ipn *momo.IPN) error
	CheckStatus(ctx context.Context, userId uuid.UUID, orderCode string) (*dto.CheckStatusResponse, error)
	ListOrders(ctx context.Context, userId uuid.UUID) (*dto.OrderListResponse, error)
	CancelOrder(ctx context.Context, userId uuid.UUID, orderId uuid.UUID) (*dto.OrderResponse, error)
}

type checkoutService struct {
	uowFactory     unitofwork.RepositoryFactory
	engine         *cart.Engine
	gateway        PaymentGateway
	eventPublisher EventPublisher
	queue          IPublisherService
	orderInfo      string
	logger         logger.ILogger
	now            func() time.Time
}

// NewCheckoutService wires the payment flow. gateway, eventPublisher and
// queue may be nil; MoMo checkout is refused without a gateway.
func NewCheckoutService(
	uowFactory unitofwork.RepositoryFactory,
	catalog cart.Catalog,
	gateway PaymentGateway,
	eventPublisher EventPublisher,
	queue IPublisherService,
	orderInfo string,
	log logger.ILogger,
) ICheckoutService {
	return &checkoutService{
		uowFactory:     uowFactory,
		engine:         cart.NewEngine(catalog),
		gateway:        gateway,
		eventPublisher: eventPublisher,
		queue:          queue,
		orderInfo:      orderInfo,
		logger:         log,
		now:            time.Now,
	}
}

func (s *checkoutService) Pay(ctx context.Context, userId uuid.UUID, req *dto.PaymentRequest) (*dto.PaymentResponse, error) {
	method, err := checkout.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, apperror.Validation("Phương thức thanh toán không hợp lệ, vui lòng chọn COD hoặc MOMO", err)
	}
	if method == entity.PaymentMethodMomo && s.gateway == nil {
		return nil, apperror.ExternalGateway("Cổng thanh toán MoMo chưa được cấu hình", nil)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("Không tìm thấy người dùng")
	}

	current, err := uow.CartRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, apperror.Validation("Giỏ hàng trống", checkout.ErrEmptyCart)
	}

	view := s.engine.View(ctx, *current)
	lines := cart.Snapshot(view)
	if len(lines) == 0 {
		return nil, apperror.Validation("Giỏ hàng trống", checkout.ErrEmptyCart)
	}

	now := s.now()
	code, err := s.freeOrderCode(ctx, uow, now)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		Id:            uuid.New(),
		OrderCode:     code,
		UserId:        userId,
		Items:         lines,
		TotalAmount:   cart.Total(view),
		PaymentMethod: method,
		Status:        entity.OrderStatusCart,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := checkout.Transition(order, entity.OrderStatusPendingPayment, now); err != nil {
		return nil, err
	}

	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		if database.IsUniqueViolation(err, orderCodeConstraint) {
			return nil, apperror.StateConflict("Mã đơn hàng bị trùng, vui lòng thử lại", err)
		}
		return nil, err
	}

	if method == entity.PaymentMethodCOD {
		return s.completeCOD(ctx, uow, order)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return s.redirectToMomo(ctx, order)
}

func (s *checkoutService) completeCOD(ctx context.Context, uow unitofwork.UnitOfWork, order *entity.Order) (*dto.PaymentResponse, error) {
	if err := checkout.Transition(order, entity.OrderStatusCompleted, s.now()); err != nil {
		return nil, err
	}
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return nil, err
	}
	if err := uow.CartRepository().Clear(ctx, order.UserId); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("CHECKOUT", "COD order completed", map[string]interface{}{
		"order_code": order.OrderCode,
		"user_id":    order.UserId.String(),
		"total":      order.TotalAmount,
	})
	s.finalize(ctx, order)

	return &dto.PaymentResponse{
		Success:       true,
		Message:       "Đặt hàng thành công! Bạn sẽ thanh toán khi nhận hàng.",
		PaymentMethod: string(entity.PaymentMethodCOD),
		OrderId:       order.OrderCode,
		OrderTotal:    order.TotalAmount,
	}, nil
}

// redirectToMomo calls the gateway outside any transaction, then records the
// outcome under the order lock. The cart stays until the callback settles it.
func (s *checkoutService) redirectToMomo(ctx context.Context, order *entity.Order) (*dto.PaymentResponse, error) {
	created, gwErr := s.gateway.CreatePayment(ctx, order.OrderCode, order.TotalAmount)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	locked, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: order.Id}, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if locked == nil {
		return nil, apperror.NotFound("Không tìm thấy đơn hàng")
	}

	if gwErr != nil {
		s.logger.Error("CHECKOUT", "MoMo create payment failed", map[string]interface{}{
			"order_code": order.OrderCode,
			"error":      gwErr.Error(),
		})
		if locked.Status.IsTerminal() {
			if err := uow.Commit(); err != nil {
				return nil, err
			}
		} else {
			locked.FailureReason = gwErr.Error()
			if err := checkout.Transition(locked, entity.OrderStatusFailed, s.now()); err != nil {
				return nil, err
			}
			if err := uow.OrderRepository().Update(ctx, locked); err != nil {
				return nil, err
			}
			if err := uow.Commit(); err != nil {
				return nil, err
			}
			s.finalize(ctx, locked)
		}
		return nil, apperror.ExternalGateway("Không thể tạo thanh toán MoMo, vui lòng thử lại sau", gwErr)
	}

	switch locked.Status {
	case entity.OrderStatusPendingPayment:
		locked.PaymentUrl = created.PayUrl
		if err := checkout.Transition(locked, entity.OrderStatusAwaitingGatewayRedirect, s.now()); err != nil {
			return nil, err
		}
		if err := uow.OrderRepository().Update(ctx, locked); err != nil {
			return nil, err
		}
	case entity.OrderStatusAwaitingGatewayRedirect:
	default:
		// Settled while the gateway call was in flight; the pay URL is stale.
		s.logger.Warn("CHECKOUT", "Order settled before MoMo redirect was recorded", map[string]interface{}{
			"order_code": locked.OrderCode,
			"status":     locked.Status.String(),
		})
		return nil, apperror.StateConflict(
			fmt.Sprintf("Đơn hàng đã ở trạng thái %s", locked.Status),
			checkout.ErrStateConflict,
		)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("CHECKOUT", "MoMo payment created", map[string]interface{}{
		"order_code": order.OrderCode,
		"amount":     order.TotalAmount,
	})

	return &dto.PaymentResponse{
		Success:       true,
		Message:       "Vui lòng hoàn tất thanh toán trên MoMo",
		PaymentMethod: string(entity.PaymentMethodMomo),
		OrderId:       order.OrderCode,
		PaymentUrl:    created.PayUrl,
		Amount:        order.TotalAmount,
		OrderInfo:     s.orderInfo,
	}, nil
}

func (s *checkoutService) orderPrefix() string {
	if s.gateway != nil && s.gateway.PartnerCode() != "" {
		return s.gateway.PartnerCode()
	}
	return defaultOrderPrefix
}

// freeOrderCode bumps the millisecond stamp until no stored order uses it.
// The unique index still guards concurrent inserts.
func (s *checkoutService) freeOrderCode(ctx context.Context, uow unitofwork.UnitOfWork, now time.Time) (string, error) {
	for {
		code := checkout.NewOrderCode(s.orderPrefix(), now)
		existing, err := uow.OrderRepository().FindOne(ctx, specification.ByOrderCode{Code: code})
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
		now = now.Add(time.Millisecond)
	}
}

// HandleCallback applies a gateway notification. Repeated or late
// notifications for a settled order change nothing.
func (s *checkoutService) HandleCallback(ctx context.Context, ipn *momo.IPN) error {
	if s.gateway == nil || !s.gateway.VerifyIPN(ipn) {
		orderId := ""
		if ipn != nil {
			orderId = ipn.OrderId
		}
		s.logger.Warn("CHECKOUT", "Rejected MoMo callback with invalid signature", map[string]interface{}{
			"order_code": orderId,
		})
		return momo.ErrInvalidSignature
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByOrderCode{Code: ipn.OrderId}, specification.ForUpdate{})
	if err != nil {
		return err
	}
	if order == nil {
		s.logger.Warn("CHECKOUT", "MoMo callback for unknown order", map[string]interface{}{
			"order_code": ipn.OrderId,
		})
		return nil
	}
	if order.Status.IsTerminal() {
		s.logger.Info("CHECKOUT", "MoMo callback for settled order ignored", map[string]interface{}{
			"order_code": order.OrderCode,
			"status":     order.Status.String(),
		})
		return nil
	}
	if int64(ipn.Amount) != order.TotalAmount {
		s.logger.Warn("CHECKOUT", "MoMo callback amount mismatch", map[string]interface{}{
			"order_code": order.OrderCode,
			"expected":   order.TotalAmount,
			"received":   int64(ipn.Amount),
		})
		return nil
	}

	now := s.now()
	if ipn.Succeeded() {
		if err := checkout.Transition(order, entity.OrderStatusCompleted, now); err != nil {
			return err
		}
		txnId := ipn.TransId.String()
		order.ExternalTxnId = &txnId
		if err := uow.OrderRepository().Update(ctx, order); err != nil {
			return err
		}

		// Order row first, then the user row.
		if _, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.UserId}, specification.ForUpdate{}); err != nil {
			return err
		}
		if err := uow.CartRepository().Clear(ctx, order.UserId); err != nil {
			return err
		}
	} else {
		declined := apperror.PaymentDeclined(ipn.Message, &momo.GatewayError{ResultCode: int64(ipn.ResultCode), Message: ipn.Message})
		order.FailureReason = declined.Err.Error()
		if err := checkout.Transition(order, entity.OrderStatusFailed, now); err != nil {
			return err
		}
		if err := uow.OrderRepository().Update(ctx, order); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("CHECKOUT", "MoMo callback applied", map[string]interface{}{
		"order_code":  order.OrderCode,
		"status":      order.Status.String(),
		"result_code": int64(ipn.ResultCode),
	})
	s.finalize(ctx, order)
	return nil
}

func (s *checkoutService) CheckStatus(ctx context.Context, userId uuid.UUID, orderCode string) (*dto.CheckStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx,
		specification.ByOrderCode{Code: orderCode},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("Không tìm thấy đơn hàng")
	}
	if s.gateway == nil {
		return nil, apperror.ExternalGateway("Cổng thanh toán MoMo chưa được cấu hình", nil)
	}

	status, err := s.gateway.QueryStatus(ctx, orderCode)
	if err != nil {
		return nil, apperror.ExternalGateway("Không thể kiểm tra trạng thái giao dịch", err)
	}
	return &dto.CheckStatusResponse{Success: true, TransactionStatus: status}, nil
}

func (s *checkoutService) ListOrders(ctx context.Context, userId uuid.UUID) (*dto.OrderListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	orders, err := uow.OrderRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: orderListLimit},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDTO(o))
	}
	return &dto.OrderListResponse{Success: true, Orders: out}, nil
}

func (s *checkoutService) CancelOrder(ctx context.Context, userId uuid.UUID, orderId uuid.UUID) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	order, err := uow.OrderRepository().FindOne(ctx,
		specification.ByID{ID: orderId},
		specification.UserOwnedBy{UserID: userId},
		specification.ForUpdate{},
	)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("Không tìm thấy đơn hàng")
	}
	// A wallet order is persisted only to be submitted to the gateway, so it
	// can never be withdrawn here.
	if order.PaymentMethod == entity.PaymentMethodMomo {
		return nil, apperror.StateConflict(
			"Không thể hủy đơn hàng thanh toán qua MoMo",
			checkout.ErrStateConflict,
		)
	}
	if order.Status != entity.OrderStatusPendingPayment {
		return nil, apperror.StateConflict(
			fmt.Sprintf("Không thể hủy đơn hàng ở trạng thái %s", order.Status),
			checkout.ErrStateConflict,
		)
	}

	if err := checkout.Transition(order, entity.OrderStatusCancelled, s.now()); err != nil {
		return nil, apperror.StateConflict("Không thể hủy đơn hàng", err)
	}
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.finalize(ctx, order)
	return &dto.OrderResponse{Success: true, Order: toOrderDTO(order)}, nil
}

// finalize announces a terminal order. Delivery failures are logged only.
func (s *checkoutService) finalize(ctx context.Context, order *entity.Order) {
	if s.eventPublisher != nil {
		evt := events.NewOrderEvent(eventTypeFor(order.Status), events.OrderSnapshot{
			OrderId:       order.Id,
			OrderCode:     order.OrderCode,
			UserId:        order.UserId,
			PaymentMethod: string(order.PaymentMethod),
			Status:        order.Status.String(),
			TotalAmount:   order.TotalAmount,
			Reason:        order.FailureReason,
		}, s.now())
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("CHECKOUT", "Failed to publish order event", map[string]interface{}{
				"order_code": order.OrderCode,
				"error":      err.Error(),
			})
		}
	}

	if s.queue != nil {
		payload, err := json.Marshal(dto.OrderFinalizedMessage{OrderId: order.Id})
		if err == nil {
			err = s.queue.Publish(ctx, payload)
		}
		if err != nil {
			s.logger.Warn("CHECKOUT", "Failed to queue finalized order", map[string]interface{}{
				"order_code": order.OrderCode,
				"error":      err.Error(),
			})
		}
	}
}

func eventTypeFor(status entity.OrderStatus) string {
	switch status {
	case entity.OrderStatusCompleted:
		return events.OrderCompleted
	case entity.OrderStatusCancelled:
		return events.OrderCancelled
	default:
		return events.OrderFailed
	}
}

// IsInvalidSignature reports whether a callback was rejected for its signature.
func IsInvalidSignature(err error) bool {
	return errors.Is(err, momo.ErrInvalidSignature)
}
