package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/pkg/mailer"
	"fashion-chatbot-be/internal/repository/specification"
	"fashion-chatbot-be/internal/repository/unitofwork"
	"fashion-chatbot-be/pkg/dialogue"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const OrderStatusMessageType = "order_status"

// StatusNotifier pushes a frame to every live connection of a user.
type StatusNotifier interface {
	SendToUser(userID uuid.UUID, msgType string, data interface{})
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	notifier   StatusNotifier
	mailer     mailer.IEmailService
	logger     logger.ILogger
	now        func() time.Time
}

// NewConsumerService handles finalized orders. notifier and mail may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	notifier StatusNotifier,
	mail mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		notifier:   notifier,
		mailer:     mail,
		logger:     log,
		now:        time.Now,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.OrderFinalizedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads never succeed
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: payload.OrderId})
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to load order", map[string]interface{}{
			"order_id": payload.OrderId.String(),
			"error":    err.Error(),
		})
		msg.Nack()
		return
	}
	if order == nil {
		cs.logger.Warn("CONSUMER", "Finalized order not found", map[string]interface{}{"order_id": payload.OrderId.String()})
		msg.Ack()
		return
	}

	if cs.notifier != nil {
		cs.notifier.SendToUser(order.UserId, OrderStatusMessageType, toOrderDTO(order))
	}

	if order.Status != entity.OrderStatusCompleted {
		msg.Ack()
		return
	}

	if err := cs.appendOrderNote(ctx, order); err != nil {
		cs.logger.Error("CONSUMER", "Failed to append order note", map[string]interface{}{
			"order_code": order.OrderCode,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.sendConfirmation(ctx, uow, order)
	msg.Ack()
}

func (cs *consumerService) appendOrderNote(ctx context.Context, order *entity.Order) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.UserId}, specification.ForUpdate{})
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	note := entity.ChatTurn{
		Id:        uuid.New(),
		UserId:    order.UserId,
		Role:      entity.ChatRoleAssistant,
		Content:   fmt.Sprintf("Đơn hàng %s đã được xác nhận. Tổng thanh toán: %s.", order.OrderCode, dialogue.FormatVND(order.TotalAmount)),
		Timestamp: cs.now(),
	}
	if err := uow.ChatTurnRepository().Append(ctx, note); err != nil {
		return err
	}
	if err := uow.ChatTurnRepository().Trim(ctx, order.UserId, entity.MaxTranscriptTurns); err != nil {
		return err
	}
	return uow.Commit()
}

func (cs *consumerService) sendConfirmation(ctx context.Context, uow unitofwork.UnitOfWork, order *entity.Order) {
	if cs.mailer == nil {
		return
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.UserId})
	if err != nil || user == nil || user.Email == "" {
		return
	}
	// mailer logs its own failures; a lost email does not retry the message
	_ = cs.mailer.SendOrderConfirmation(user.Email, user.DisplayName(), order)
}
