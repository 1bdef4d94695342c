package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/commercehub/orders-backend/pkg/db/models"
	"github.com/commercehub/orders-backend/pkg/pagination"
)

// Repository defines persistence for orders and their creation facts.
type Repository interface {
	// Create persists the order, its lines, and the outbox fact in one
	// transaction. All rows commit together or none do.
	Create(ctx context.Context, order *models.Order, lines []models.OrderLine, fact models.OutboxEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*OrderDetail, error)
	List(ctx context.Context, params pagination.Params) (*OrderList, error)
}

// Service defines the order operations exposed to transports.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (uuid.UUID, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDetail, error)
	ListOrders(ctx context.Context, params pagination.Params) (*OrderList, error)
}
