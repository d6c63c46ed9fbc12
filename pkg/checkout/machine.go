package checkout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fashion-chatbot-be/internal/entity"
)

var (
	ErrEmptyCart            = errors.New("shopping cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method, please use COD or MOMO")
	ErrStateConflict        = errors.New("illegal transition of order status")
)

var transitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderStatusCart: {entity.OrderStatusPendingPayment},
	entity.OrderStatusPendingPayment: {
		entity.OrderStatusAwaitingGatewayRedirect,
		entity.OrderStatusCompleted,
		entity.OrderStatusFailed,
		entity.OrderStatusCancelled,
	},
	entity.OrderStatusAwaitingGatewayRedirect: {
		entity.OrderStatusCompleted,
		entity.OrderStatusFailed,
	},
}

func CanTransitionTo(from, to entity.OrderStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves the order to status `to`, stamping UpdatedAt and, for
// completion, CompletedAt. Terminal orders never change.
func Transition(order *entity.Order, to entity.OrderStatus, now time.Time) error {
	if order.Status.IsTerminal() || !CanTransitionTo(order.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrStateConflict, order.Status, to)
	}
	order.Status = to
	order.UpdatedAt = now
	if to == entity.OrderStatusCompleted {
		completed := now
		order.CompletedAt = &completed
	}
	return nil
}

// ParsePaymentMethod accepts COD and MOMO; EXTERNAL_WALLET is an alias of MOMO.
func ParsePaymentMethod(raw string) (entity.PaymentMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(entity.PaymentMethodCOD):
		return entity.PaymentMethodCOD, nil
	case string(entity.PaymentMethodMomo), "EXTERNAL_WALLET":
		return entity.PaymentMethodMomo, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// NewOrderCode builds the gateway order id: merchant prefix plus epoch millis.
func NewOrderCode(partnerCode string, now time.Time) string {
	return partnerCode + strconv.FormatInt(now.UnixMilli(), 10)
}
