package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/commercehub/orders-backend/pkg/db/models"
	"github.com/commercehub/orders-backend/pkg/enums"
	"github.com/commercehub/orders-backend/pkg/outbox"
)

// OrderCreatedPayload is the self-sufficient fact body consumers receive.
// Downstream systems see nothing but this row, so it repeats everything the
// aggregate knows at creation time.
type OrderCreatedPayload struct {
	OrderID    uuid.UUID          `json:"order_id"`
	CustomerID uuid.UUID          `json:"customer_id"`
	Status     enums.OrderStatus  `json:"status"`
	Lines      []OrderCreatedLine `json:"lines"`
}

// OrderCreatedLine mirrors one persisted line inside the fact payload.
// UnitPrice marshals as a quoted decimal string.
type OrderCreatedLine struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewOrderCreatedFact renders the creation fact for an order built by
// NewOrder. The row's aggregate type names the aggregate exactly; the capture
// pipeline derives the destination topic from it.
func NewOrderCreatedFact(order *models.Order, lines []models.OrderLine) (models.OutboxEvent, error) {
	payload := OrderCreatedPayload{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Lines:      make([]OrderCreatedLine, 0, len(lines)),
	}
	for _, line := range lines {
		payload.Lines = append(payload.Lines, OrderCreatedLine{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	return outbox.NewEvent(outbox.Fact{
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID.String(),
		EventType:     enums.EventOrderCreated,
		Payload:       payload,
	})
}
