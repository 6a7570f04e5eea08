// Package message holds the broker-agnostic contracts exchanged between the
// orders and payments services.
package message

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"paysaga/internal/app/model"
)

const (
	TypePaymentRequest = "PaymentRequest"
	TypePaymentResult  = "PaymentResult"

	QueuePaymentRequests = "payment_requests"
	QueuePaymentResults  = "payment_results"
)

const (
	ReasonPaymentSuccessful = "Payment successful"
	ReasonAlreadyProcessed  = "already processed"
	ReasonAccountNotFound   = "Account not found"
	ReasonInsufficientFunds = "Insufficient funds"
)

var ErrUnknownType = errors.New("unknown message type")

type PaymentRequest struct {
	MessageID uuid.UUID       `json:"messageId"`
	OrderID   uuid.UUID       `json:"orderId"`
	UserID    string          `json:"userId"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

type PaymentResult struct {
	MessageID uuid.UUID `json:"messageId"`
	OrderID   uuid.UUID `json:"orderId"`
	Success   bool      `json:"success"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// QueueFor returns the durable queue a message type is published to
func QueueFor(messageType string) (string, error) {
	switch messageType {
	case TypePaymentRequest:
		return QueuePaymentRequests, nil
	case TypePaymentResult:
		return QueuePaymentResults, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, messageType)
}

// DecodePaymentRequest parses and checks the identities a consumer relies on
func DecodePaymentRequest(b []byte) (*PaymentRequest, error) {
	m := &PaymentRequest{}
	if err := json.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	if m.MessageID == uuid.Nil || m.OrderID == uuid.Nil {
		return nil, errors.New("payment request without message or order id")
	}
	if !model.ValidAmount(m.Amount) {
		return nil, fmt.Errorf("payment request amount %s is not a positive amount in cents", m.Amount)
	}
	return m, nil
}

func DecodePaymentResult(b []byte) (*PaymentResult, error) {
	m := &PaymentResult{}
	if err := json.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	if m.OrderID == uuid.Nil {
		return nil, errors.New("payment result without order id")
	}
	return m, nil
}
