package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/commercehub/orders-backend/pkg/enums"
)

// CreateOrderInput is the decoded create request body.
type CreateOrderInput struct {
	CustomerID uuid.UUID              `json:"customer_id" validate:"required"`
	Lines      []CreateOrderLineInput `json:"lines" validate:"required,min=1,dive"`
}

// CreateOrderLineInput carries one requested line. unit_price accepts a JSON
// string or number; decimal.Decimal unmarshals both.
type CreateOrderLineInput struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderLineView exposes one persisted line in read responses.
type OrderLineView struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderDetail is the single-order read model, lines in submission order.
type OrderDetail struct {
	ID         uuid.UUID         `json:"id"`
	CustomerID uuid.UUID         `json:"customer_id"`
	Status     enums.OrderStatus `json:"status"`
	Lines      []OrderLineView   `json:"lines"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// OrderSummary is one row in the paginated list; lines are not loaded.
type OrderSummary struct {
	ID         uuid.UUID         `json:"id"`
	CustomerID uuid.UUID         `json:"customer_id"`
	Status     enums.OrderStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

// OrderList wraps a page of orders plus the total row count.
type OrderList struct {
	Orders []OrderSummary `json:"orders"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Total  int64          `json:"total"`
}
