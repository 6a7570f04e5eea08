package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusFinished  OrderStatus = "FINISHED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFinished || s == OrderStatusCancelled
}

type Order struct {
	ID          uuid.UUID
	UserID      string
	Amount      decimal.Decimal
	Description string
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
