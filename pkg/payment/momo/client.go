package momo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	ErrGatewayUnavailable = errors.New("momo gateway unavailable")
	ErrInvalidSignature   = errors.New("momo signature mismatch")
)

type Config struct {
	Endpoint    string // e.g. https://test-payment.momo.vn
	PartnerCode string
	PartnerName string
	StoreId     string
	AccessKey   string
	SecretKey   string
	RedirectUrl string
	IpnUrl      string
	RequestType string
	OrderInfo   string
	Lang        string
	AutoCapture bool
	Timeout     time.Duration
}

type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "momo",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
	}
}

func (c *Client) PartnerCode() string {
	return c.cfg.PartnerCode
}

// CreatePayment signs and submits a capture-wallet creation request. A
// transport failure or timeout yields ErrGatewayUnavailable; a non-zero
// result code yields *GatewayError.
func (c *Client) CreatePayment(ctx context.Context, orderId string, amount int64) (*CreateResponse, error) {
	req := &CreateRequest{
		PartnerCode: c.cfg.PartnerCode,
		PartnerName: c.cfg.PartnerName,
		StoreId:     c.cfg.StoreId,
		RequestId:   orderId,
		Amount:      FlexInt(amount),
		OrderId:     orderId,
		OrderInfo:   c.cfg.OrderInfo,
		RedirectUrl: c.cfg.RedirectUrl,
		IpnUrl:      c.cfg.IpnUrl,
		Lang:        c.cfg.Lang,
		RequestType: c.cfg.RequestType,
		AutoCapture: c.cfg.AutoCapture,
		ExtraData:   "",
	}
	req.Signature = Sign(c.cfg.SecretKey, CanonicalString(createFields(c.cfg.AccessKey, req)))

	var resp CreateResponse
	if err := c.post(ctx, "/v2/gateway/api/create", req, &resp); err != nil {
		return nil, err
	}
	if resp.ResultCode != ResultCodeSuccess || resp.PayUrl == "" {
		return nil, &GatewayError{ResultCode: int64(resp.ResultCode), Message: resp.Message}
	}
	return &resp, nil
}

// QueryStatus asks the gateway for the current state of an order. It is
// read-only on both sides.
func (c *Client) QueryStatus(ctx context.Context, orderId string) (*QueryResponse, error) {
	req := &QueryRequest{
		PartnerCode: c.cfg.PartnerCode,
		RequestId:   orderId,
		OrderId:     orderId,
		Lang:        c.cfg.Lang,
	}
	req.Signature = Sign(c.cfg.SecretKey, CanonicalString(queryFields(c.cfg.AccessKey, req)))

	var resp QueryResponse
	if err := c.post(ctx, "/v2/gateway/api/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyIPN checks the notification signature with the shared secret.
func (c *Client) VerifyIPN(n *IPN) bool {
	if n == nil || n.Signature == "" {
		return false
	}
	return Verify(c.cfg.SecretKey, CanonicalString(ipnFields(c.cfg.AccessKey, n)), n.Signature)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal momo request: %w", err)
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		res, err := c.http.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		raw, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, err
		}
		if res.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("momo http %d: %s", res.StatusCode, string(raw))
		}
		// 4xx bodies still carry resultCode and message
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("decode momo response (http %d): %w", res.StatusCode, err)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	return nil
}
