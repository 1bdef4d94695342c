package outbox

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/commercehub/orders-backend/pkg/db/models"
	"github.com/commercehub/orders-backend/pkg/enums"
)

// Fact describes a domain event before it is rendered into an outbox row.
type Fact struct {
	AggregateType enums.OutboxAggregateType
	AggregateID   string
	EventType     enums.OutboxEventType
	Payload       any
}

// NewEvent renders a Fact into the row persisted alongside the aggregate.
// The payload must be self-sufficient: downstream consumers see nothing but
// this row.
func NewEvent(fact Fact) (models.OutboxEvent, error) {
	if !fact.AggregateType.IsValid() {
		return models.OutboxEvent{}, fmt.Errorf("invalid aggregate type %q", fact.AggregateType)
	}
	if !fact.EventType.IsValid() {
		return models.OutboxEvent{}, fmt.Errorf("invalid event type %q", fact.EventType)
	}
	if fact.AggregateID == "" {
		return models.OutboxEvent{}, fmt.Errorf("aggregate id required")
	}

	payload, err := json.Marshal(fact.Payload)
	if err != nil {
		return models.OutboxEvent{}, fmt.Errorf("marshal payload: %w", err)
	}

	return models.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: fact.AggregateType,
		AggregateID:   fact.AggregateID,
		EventType:     fact.EventType,
		Payload:       json.RawMessage(payload),
	}, nil
}
