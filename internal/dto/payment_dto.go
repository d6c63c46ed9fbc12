package dto

import (
	"github.com/google/uuid"

	"fashion-chatbot-be/pkg/payment/momo"
)

type PaymentRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

type PaymentResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	PaymentMethod string `json:"paymentMethod"`
	OrderId       string `json:"orderId,omitempty"`
	OrderTotal    int64  `json:"orderTotal,omitempty"`
	PaymentUrl    string `json:"paymentUrl,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	OrderInfo     string `json:"orderInfo,omitempty"`
}

type CheckStatusRequest struct {
	OrderId string `json:"orderId" validate:"required,max=100"`
}

type CheckStatusResponse struct {
	Success           bool                `json:"success"`
	TransactionStatus *momo.QueryResponse `json:"transactionStatus"`
}

// OrderFinalizedMessage is queued after an order reaches a terminal state.
type OrderFinalizedMessage struct {
	OrderId uuid.UUID `json:"order_id"`
}
