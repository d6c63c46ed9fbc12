package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/pkg/serverutils"
	"fashion-chatbot-be/pkg/payment/momo"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubChatbot struct {
	err    error
	userId uuid.UUID
}

func (s *stubChatbot) ProcessMessage(ctx context.Context, userId uuid.UUID, message string) (*dto.SendMessageResponse, error) {
	s.userId = userId
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SendMessageResponse{Success: true, Response: &dto.ChatReplyDTO{Message: "Xin chào!"}}, nil
}

func (s *stubChatbot) GetHistory(ctx context.Context, userId uuid.UUID) (*dto.ChatHistoryResponse, error) {
	return &dto.ChatHistoryResponse{Success: true, History: []*dto.ChatTurnDTO{}}, nil
}

func (s *stubChatbot) UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferencesRequest) (*dto.UpdatePreferencesResponse, error) {
	return &dto.UpdatePreferencesResponse{Success: true}, nil
}

type stubCheckout struct {
	callbacks   int
	callbackErr error
	payErr      error
}

func (s *stubCheckout) Pay(ctx context.Context, userId uuid.UUID, req *dto.PaymentRequest) (*dto.PaymentResponse, error) {
	if s.payErr != nil {
		return nil, s.payErr
	}
	return &dto.PaymentResponse{Success: true, PaymentMethod: "COD", OrderTotal: 450000}, nil
}

func (s *stubCheckout) HandleCallback(ctx context.Context, ipn *momo.IPN) error {
	s.callbacks++
	return s.callbackErr
}

func (s *stubCheckout) CheckStatus(ctx context.Context, userId uuid.UUID, orderCode string) (*dto.CheckStatusResponse, error) {
	return &dto.CheckStatusResponse{Success: true}, nil
}

func (s *stubCheckout) ListOrders(ctx context.Context, userId uuid.UUID) (*dto.OrderListResponse, error) {
	return &dto.OrderListResponse{Success: true}, nil
}

func (s *stubCheckout) CancelOrder(ctx context.Context, userId uuid.UUID, orderId uuid.UUID) (*dto.OrderResponse, error) {
	return nil, apperror.StateConflict("Không thể hủy đơn hàng", nil)
}

type stubCart struct{}

func (stubCart) GetCart(ctx context.Context, userId uuid.UUID) (*dto.CartResponse, error) {
	return &dto.CartResponse{Success: true, Cart: []*dto.CartLineDTO{}}, nil
}

func (stubCart) AddItem(ctx context.Context, userId uuid.UUID, req *dto.AddToCartRequest) (*dto.CartResponse, error) {
	return &dto.CartResponse{Success: true, CartCount: 1}, nil
}

func (stubCart) UpdateItem(ctx context.Context, userId uuid.UUID, req *dto.UpdateCartRequest) (*dto.CartResponse, error) {
	return &dto.CartResponse{Success: true}, nil
}

func (stubCart) RemoveItem(ctx context.Context, userId uuid.UUID, req *dto.RemoveCartRequest) (*dto.CartResponse, error) {
	return &dto.CartResponse{Success: true}, nil
}

func newTestApp(chat *stubChatbot, checkout *stubCheckout) *fiber.App {
	log := logger.NewNopLogger()
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(log)})
	api := app.Group("/api/chatbot")
	auth := serverutils.JwtMiddleware(testSecret)

	NewChatbotController(chat, log).RegisterRoutes(api, auth)
	NewCartController(stubCart{}, checkout).RegisterRoutes(api, auth)
	NewPaymentController(checkout, log).RegisterRoutes(api, auth)
	return app
}

func signedToken(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userId.String()})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func doRequest(t *testing.T, app *fiber.App, method, path, body, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	return resp, string(raw)
}

func TestSendMessage(t *testing.T) {
	userId := uuid.New()
	chat := &stubChatbot{}
	app := newTestApp(chat, &stubCheckout{})

	resp, body := doRequest(t, app, http.MethodPost, "/api/chatbot/message", `{"message":"xin chào"}`, signedToken(t, userId))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, "Xin chào!")
	assert.Equal(t, userId, chat.userId)
}

func TestSendMessage_MissingMessage(t *testing.T) {
	app := newTestApp(&stubChatbot{}, &stubCheckout{})

	resp, _ := doRequest(t, app, http.MethodPost, "/api/chatbot/message", `{}`, signedToken(t, uuid.New()))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendMessage_FailureIsLocalized(t *testing.T) {
	app := newTestApp(&stubChatbot{err: errors.New("db down")}, &stubCheckout{})

	resp, body := doRequest(t, app, http.MethodPost, "/api/chatbot/message", `{"message":"tìm áo"}`, signedToken(t, uuid.New()))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, chatFailureMessage)
	assert.NotContains(t, body, "db down")
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(&stubChatbot{}, &stubCheckout{})

	resp, _ := doRequest(t, app, http.MethodGet, "/api/chatbot/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/chatbot/cart", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/chatbot/cart", "", signedToken(t, uuid.New()))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAddToCart_Validation(t *testing.T) {
	app := newTestApp(&stubChatbot{}, &stubCheckout{})
	token := signedToken(t, uuid.New())

	resp, _ := doRequest(t, app, http.MethodPost, "/api/chatbot/cart", `{"productId":"abc"}`, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doRequest(t, app, http.MethodPost, "/api/chatbot/cart", `{"productId":"`+uuid.NewString()+`","quantity":1}`, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"cartCount":1`)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/chatbot/cart", `{"productId":"`+uuid.NewString()+`","quantity":1001}`, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPut, "/api/chatbot/cart/update", `{"productId":"`+uuid.NewString()+`","quantity":9223372036854775807}`, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPayment_GatewayErrorStatus(t *testing.T) {
	checkout := &stubCheckout{payErr: apperror.ExternalGateway("Không thể tạo thanh toán MoMo", errors.New("timeout"))}
	app := newTestApp(&stubChatbot{}, checkout)

	resp, body := doRequest(t, app, http.MethodPost, "/api/chatbot/cart/payment", `{"paymentMethod":"MOMO"}`, signedToken(t, uuid.New()))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, `"success":false`)
}

func TestMomoCallback_AlwaysNoContent(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		callbackErr error
		wantCalls   int
	}{
		{"applied", `{"orderId":"MOMO1","resultCode":0,"amount":"450000"}`, nil, 1},
		{"bad signature", `{"orderId":"MOMO1","resultCode":0}`, momo.ErrInvalidSignature, 1},
		{"processing error", `{"orderId":"MOMO1","resultCode":"1006"}`, errors.New("db down"), 1},
		{"malformed", `{not json`, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkout := &stubCheckout{callbackErr: tt.callbackErr}
			app := newTestApp(&stubChatbot{}, checkout)

			resp, body := doRequest(t, app, http.MethodPost, "/api/chatbot/momo/callback", tt.body, "")
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			assert.Empty(t, body)
			assert.Equal(t, tt.wantCalls, checkout.callbacks)
		})
	}
}

func TestCancelOrder_Conflict(t *testing.T) {
	app := newTestApp(&stubChatbot{}, &stubCheckout{})

	resp, _ := doRequest(t, app, http.MethodPost, "/api/chatbot/orders/"+uuid.NewString()+"/cancel", "", signedToken(t, uuid.New()))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/chatbot/orders/not-a-uuid/cancel", "", signedToken(t, uuid.New()))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
