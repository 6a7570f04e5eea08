package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HeaderUserID carries the caller identity, trusted as is
const HeaderUserID = "X-User-Id"

type CreateOrderRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description string           `json:"description" validate:"max=1024"`
}

type OrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type AccountResponse struct {
	AccountID uuid.UUID       `json:"accountId"`
	UserID    string          `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
}

type DepositRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"required"`
}

type DepositResponse struct {
	Balance       decimal.Decimal `json:"balance"`
	TransactionID uuid.UUID       `json:"transactionId"`
}

type BalanceResponse struct {
	UserID  string          `json:"userId"`
	Balance decimal.Decimal `json:"balance"`
}

type TransactionResponse struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	OrderID   *uuid.UUID      `json:"orderId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
