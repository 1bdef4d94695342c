package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/commercehub/orders-backend/pkg/errors"
	"github.com/commercehub/orders-backend/pkg/logger"
	"github.com/commercehub/orders-backend/pkg/metrics"
	"github.com/commercehub/orders-backend/pkg/pagination"
)

type service struct {
	repo    Repository
	metrics *metrics.OrderMetrics
	logg    *logger.Logger
}

// NewService builds the order service with the required dependencies.
func NewService(repo Repository, m *metrics.OrderMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, metrics: m, logg: logg}, nil
}

// CreateOrder validates the request, builds the aggregate and its creation
// fact, and commits them atomically. It performs no retries; a caller that
// retries after an ambiguous failure gets CONFLICT once the original commit
// is visible, which confirms success.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (uuid.UUID, error) {
	lines := make([]LineInput, 0, len(input.Lines))
	for _, line := range input.Lines {
		lines = append(lines, LineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	order, orderLines, err := NewOrder(input.CustomerID, lines)
	if err != nil {
		return uuid.Nil, err
	}

	fact, err := NewOrderCreatedFact(order, orderLines)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding creation fact")
	}

	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	if err := s.repo.Create(ctx, order, orderLines, fact); err != nil {
		s.metrics.IncFailure(failureReason(err))
		return uuid.Nil, err
	}

	s.metrics.IncCreated(string(order.Status))
	s.metrics.IncFact(string(fact.EventType))
	s.logg.Info(ctx, "order created")
	return order.ID, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, params pagination.Params) (*OrderList, error) {
	return s.repo.List(ctx, params)
}

func failureReason(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return string(typed.Code())
	}
	return "unknown"
}
