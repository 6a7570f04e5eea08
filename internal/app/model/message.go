package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// OutboxMessage is written in the same transaction as the business row it announces
type OutboxMessage struct {
	ID          uuid.UUID
	Type        string
	Payload     []byte
	Processed   bool
	CreatedAt   time.Time
	ProcessedAt sql.NullTime
}

// InboxMessage records an inbound message id once its effect is committed
type InboxMessage struct {
	ID          uuid.UUID
	Type        string
	Payload     []byte
	Processed   bool
	CreatedAt   time.Time
	ProcessedAt sql.NullTime
}
