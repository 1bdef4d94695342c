package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/commercehub/orders-backend/pkg/db/models"
	"github.com/commercehub/orders-backend/pkg/enums"
	pkgerrors "github.com/commercehub/orders-backend/pkg/errors"
)

// LineInput is one requested order line before identities are assigned.
type LineInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// NewOrder validates the request and builds the order plus its lines with
// fresh identities. Identities are generated here, before any I/O, so a
// caller that retries after an ambiguous commit reuses the same ids and the
// primary key turns the retry into a detectable conflict.
func NewOrder(customerID uuid.UUID, lines []LineInput) (*models.Order, []models.OrderLine, error) {
	if customerID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_id is required")
	}
	if len(lines) == 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one line")
	}

	var details []map[string]any
	for i, line := range lines {
		if line.ProductID == uuid.Nil {
			details = append(details, lineIssue(i, "product_id", "is required"))
		}
		if line.Quantity <= 0 {
			details = append(details, lineIssue(i, "quantity", "must be greater than zero"))
		}
		if line.UnitPrice.IsNegative() {
			details = append(details, lineIssue(i, "unit_price", "must not be negative"))
		}
	}
	if len(details) > 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order lines").WithDetails(details)
	}

	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     enums.OrderStatusPending,
	}

	// Line order is part of the contract: rows carry their submission index
	// so reads return lines exactly as supplied.
	orderLines := make([]models.OrderLine, 0, len(lines))
	for i, line := range lines {
		orderLines = append(orderLines, models.OrderLine{
			ID:         uuid.New(),
			OrderID:    order.ID,
			LineNumber: i,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
	}

	return order, orderLines, nil
}

func lineIssue(index int, field, problem string) map[string]any {
	return map[string]any{"line": index, "field": field, "problem": problem}
}
