package orders

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercehub/orders-backend/pkg/db/models"
	pkgerrors "github.com/commercehub/orders-backend/pkg/errors"
	"github.com/commercehub/orders-backend/pkg/logger"
	"github.com/commercehub/orders-backend/pkg/metrics"
	"github.com/commercehub/orders-backend/pkg/pagination"
)

type fakeRepo struct {
	createErr error

	gotOrder *models.Order
	gotLines []models.OrderLine
	gotFact  models.OutboxEvent
	creates  int

	detail *OrderDetail
	list   *OrderList
	err    error
}

func (f *fakeRepo) Create(_ context.Context, order *models.Order, lines []models.OrderLine, fact models.OutboxEvent) error {
	f.creates++
	f.gotOrder = order
	f.gotLines = lines
	f.gotFact = fact
	return f.createErr
}

func (f *fakeRepo) FindByID(_ context.Context, _ uuid.UUID) (*OrderDetail, error) {
	return f.detail, f.err
}

func (f *fakeRepo) List(_ context.Context, _ pagination.Params) (*OrderList, error) {
	return f.list, f.err
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard})
	svc, err := NewService(repo, metrics.NewOrderMetrics(prometheus.NewRegistry()), logg)
	require.NoError(t, err)
	return svc
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		CustomerID: uuid.New(),
		Lines: []CreateOrderLineInput{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.RequireFromString("3.50")},
		},
	}
}

func TestServiceCreateOrderPersistsAggregateWithFact(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)

	input := validInput()
	id, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	require.Equal(t, 1, repo.creates)
	assert.Equal(t, id, repo.gotOrder.ID)
	assert.Equal(t, input.CustomerID, repo.gotOrder.CustomerID)
	require.Len(t, repo.gotLines, 2)
	assert.Equal(t, id.String(), repo.gotFact.AggregateID)

	var payload OrderCreatedPayload
	require.NoError(t, json.Unmarshal(repo.gotFact.Payload, &payload))
	assert.Equal(t, id, payload.OrderID)
	require.Len(t, payload.Lines, 2)
	assert.Equal(t, input.Lines[0].ProductID, payload.Lines[0].ProductID)
	assert.Equal(t, input.Lines[1].ProductID, payload.Lines[1].ProductID)
}

func TestServiceCreateOrderValidationSkipsRepo(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{CustomerID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Zero(t, repo.creates, "validation failures must not reach the store")
}

func TestServiceCreateOrderPropagatesConflict(t *testing.T) {
	repo := &fakeRepo{createErr: pkgerrors.New(pkgerrors.CodeConflict, "record already exists")}
	svc := newTestService(t, repo)

	_, err := svc.CreateOrder(context.Background(), validInput())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
	assert.False(t, pkgerrors.IsRetryable(err))
}

func TestServiceCreateOrderPropagatesDependencyFailure(t *testing.T) {
	repo := &fakeRepo{createErr: pkgerrors.New(pkgerrors.CodeDependency, "store unavailable")}
	svc := newTestService(t, repo)

	_, err := svc.CreateOrder(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsRetryable(err))
}

func TestServiceGetOrderDelegates(t *testing.T) {
	want := &OrderDetail{ID: uuid.New()}
	svc := newTestService(t, &fakeRepo{detail: want})

	got, err := svc.GetOrder(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestServiceListOrdersDelegates(t *testing.T) {
	want := &OrderList{Page: 1, Limit: 20, Total: 0, Orders: []OrderSummary{}}
	svc := newTestService(t, &fakeRepo{list: want})

	got, err := svc.ListOrders(context.Background(), pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestServiceRequiresDependencies(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard})

	_, err := NewService(nil, nil, logg)
	require.Error(t, err)

	_, err = NewService(&fakeRepo{}, nil, nil)
	require.Error(t, err)
}
