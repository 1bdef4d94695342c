package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/commercehub/orders-backend/pkg/enums"
)

// OutboxEvent is an append-only fact row relayed by the log-based capture
// pipeline. The application never updates or deletes a row after insert;
// delivery bookkeeping lives entirely in the CDC connector.
type OutboxEvent struct {
	ID            uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey"`
	AggregateType enums.OutboxAggregateType `gorm:"column:aggregate_type;not null"`
	AggregateID   string                    `gorm:"column:aggregate_id;not null"`
	EventType     enums.OutboxEventType     `gorm:"column:event_type;not null"`
	Payload       json.RawMessage           `gorm:"column:payload;type:jsonb;not null"`
	CreatedAt     time.Time                 `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the outbox relation name the CDC connector is configured for.
func (OutboxEvent) TableName() string {
	return "outbox_events"
}
