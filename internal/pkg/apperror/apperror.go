package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation      Kind = "VALIDATION"
	KindNotFound        Kind = "NOT_FOUND"
	KindExternalGateway Kind = "EXTERNAL_GATEWAY"
	KindPaymentDeclined Kind = "PAYMENT_DECLINED"
	KindStateConflict   Kind = "STATE_CONFLICT"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindInternal        Kind = "INTERNAL"
)

var statusByKind = map[Kind]int{
	KindValidation:      http.StatusBadRequest,
	KindNotFound:        http.StatusNotFound,
	KindExternalGateway: http.StatusBadGateway,
	KindPaymentDeclined: http.StatusPaymentRequired,
	KindStateConflict:   http.StatusConflict,
	KindUnauthorized:    http.StatusUnauthorized,
	KindInternal:        http.StatusInternalServerError,
}

// AppError is a classified failure carrying the message shown to clients.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Status() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Validation(message string, err error) *AppError {
	return New(KindValidation, message, err)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message, nil)
}

func ExternalGateway(message string, err error) *AppError {
	return New(KindExternalGateway, message, err)
}

func PaymentDeclined(message string, err error) *AppError {
	return New(KindPaymentDeclined, message, err)
}

func StateConflict(message string, err error) *AppError {
	return New(KindStateConflict, message, err)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, message, nil)
}

// From returns the AppError in err's chain, or wraps err as internal.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(KindInternal, "internal server error", err)
}
