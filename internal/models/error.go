package models

import (
	"errors"
	"fmt"
)

var (
	ErrConflictData       = errors.New("data conflicts with existing data")
	ErrDataNotFound       = errors.New("data not found")
	ErrStatusConflict     = errors.New("order status does not match expected status")
	ErrInvalidOrderState  = errors.New("order is not in a valid state for this operation")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrProductInactive    = errors.New("product is not active")
	ErrInsufficientStock  = errors.New("not enough stock for requested quantity")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInternalError      = errors.New("internal error")
)

// GatewayError is a failed call to the payment gateway. Retryable errors
// (5xx, timeouts, connection failures) may be retried by the caller;
// non-retryable errors (4xx) indicate a configuration or request problem.
type GatewayError struct {
	StatusCode int
	Retryable  bool
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error: %s (status %d)", e.Message, e.StatusCode)
}

// NewRetryableGatewayError creates retryable GatewayError
func NewRetryableGatewayError(statusCode int, message string) *GatewayError {
	return &GatewayError{StatusCode: statusCode, Retryable: true, Message: message}
}

// NewPermanentGatewayError creates non-retryable GatewayError
func NewPermanentGatewayError(statusCode int, message string) *GatewayError {
	return &GatewayError{StatusCode: statusCode, Retryable: false, Message: message}
}

// IsRetryable reports whether err is a gateway error worth retrying.
func IsRetryable(err error) bool {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Retryable
	}
	return false
}

// DeliveryError is a failed attempt to send the product content to the
// buyer. The order stays paid and the delivery is retried later.
type DeliveryError struct {
	OrderID string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed for order %s: %v", e.OrderID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
