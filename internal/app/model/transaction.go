package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID        uuid.UUID
	CreatedAt time.Time
	TypeID    TransactionType
	OrderID   uuid.NullUUID
	UserID    string
	Amount    decimal.Decimal
}

type TransactionType int

const (
	TransactionTypeDeposit TransactionType = iota + 1
	TransactionTypeWithdrawal
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeDeposit:
		return "DEPOSIT"
	case TransactionTypeWithdrawal:
		return "WITHDRAWAL"
	}
	return "UNKNOWN"
}
