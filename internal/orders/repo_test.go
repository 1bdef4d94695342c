package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/commercehub/orders-backend/pkg/db/models"
	"github.com/commercehub/orders-backend/pkg/enums"
	pkgerrors "github.com/commercehub/orders-backend/pkg/errors"
	"github.com/commercehub/orders-backend/pkg/outbox"
	"github.com/commercehub/orders-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
  line_number INTEGER NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  unit_price TEXT NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
  id TEXT PRIMARY KEY,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  event_type TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func buildOrderFixture(t *testing.T, lineCount int) (*models.Order, []models.OrderLine, models.OutboxEvent) {
	t.Helper()

	inputs := make([]LineInput, 0, lineCount)
	for i := 0; i < lineCount; i++ {
		inputs = append(inputs, LineInput{
			ProductID: uuid.New(),
			Quantity:  i + 1,
			UnitPrice: decimal.NewFromFloat(9.99),
		})
	}

	order, lines, err := NewOrder(uuid.New(), inputs)
	require.NoError(t, err)
	fact, err := NewOrderCreatedFact(order, lines)
	require.NoError(t, err)
	return order, lines, fact
}

func TestRepositoryCreateCommitsAllRows(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, outbox.NewRepository(conn))
	ctx := context.Background()

	order, lines, fact := buildOrderFixture(t, 2)
	require.NoError(t, repo.Create(ctx, order, lines, fact))

	detail, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.CustomerID, detail.CustomerID)
	assert.Equal(t, enums.OrderStatusPending, detail.Status)
	require.Len(t, detail.Lines, 2)
	for i, view := range detail.Lines {
		assert.Equal(t, lines[i].ID, view.ID)
		assert.Equal(t, lines[i].ProductID, view.ProductID)
		assert.Equal(t, lines[i].Quantity, view.Quantity)
	}

	facts, err := outbox.NewRepository(conn).FindByAggregateID(ctx, order.ID.String())
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, enums.EventOrderCreated, facts[0].EventType)
	assert.Equal(t, order.ID.String(), facts[0].AggregateID)
}

func TestRepositoryFindByIDPreservesSubmissionOrder(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, outbox.NewRepository(conn))
	ctx := context.Background()

	// Enough lines that a read ordered by random identity would scramble.
	order, lines, fact := buildOrderFixture(t, 12)
	require.NoError(t, repo.Create(ctx, order, lines, fact))

	detail, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 12)
	for i, view := range detail.Lines {
		assert.Equal(t, i+1, view.Quantity, "line %d out of submission order", i)
		assert.Equal(t, lines[i].ID, view.ID)
	}
}

func TestRepositoryCreateRollsBackOnLineFailure(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, outbox.NewRepository(conn))
	ctx := context.Background()

	order, lines, fact := buildOrderFixture(t, 2)
	// Colliding line identities force a failure after the order row is in.
	lines[1].ID = lines[0].ID

	err := repo.Create(ctx, order, lines, fact)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	var orderCount, lineCount, factCount int64
	require.NoError(t, conn.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, conn.Model(&models.OrderLine{}).Count(&lineCount).Error)
	require.NoError(t, conn.Model(&models.OutboxEvent{}).Count(&factCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, lineCount)
	assert.Zero(t, factCount)
}

func TestRepositoryCreateDuplicateIdentityIsConflict(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, outbox.NewRepository(conn))
	ctx := context.Background()

	order, lines, fact := buildOrderFixture(t, 1)
	require.NoError(t, repo.Create(ctx, order, lines, fact))

	// A retry with the same pre-generated identities confirms the earlier
	// commit instead of writing a second order.
	err := repo.Create(ctx, order, lines, fact)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.False(t, pkgerrors.IsRetryable(err))

	facts, err := outbox.NewRepository(conn).FindByAggregateID(ctx, order.ID.String())
	require.NoError(t, err)
	assert.Len(t, facts, 1)
}

func TestRepositoryFindByIDNotFound(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, outbox.NewRepository(conn))

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestRepositoryListPaginatesNewestFirst(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, outbox.NewRepository(conn))
	ctx := context.Background()

	created := make([]uuid.UUID, 0, 5)
	for i := 0; i < 5; i++ {
		order, lines, fact := buildOrderFixture(t, 1)
		require.NoError(t, repo.Create(ctx, order, lines, fact))
		created = append(created, order.ID)
	}

	page1, err := repo.List(ctx, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page1.Total)
	assert.Equal(t, 1, page1.Page)
	assert.Equal(t, 2, page1.Limit)
	require.Len(t, page1.Orders, 2)

	page3, err := repo.List(ctx, pagination.Params{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page3.Orders, 1)

	// No lines are loaded on the list path and every order shows up once.
	seen := map[uuid.UUID]bool{}
	for _, p := range []*OrderList{page1, page3} {
		for _, row := range p.Orders {
			seen[row.ID] = true
		}
	}
	page2, err := repo.List(ctx, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	for _, row := range page2.Orders {
		seen[row.ID] = true
	}
	for _, id := range created {
		assert.True(t, seen[id])
	}
}

func TestRepositoryListDefaultsAndCaps(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, outbox.NewRepository(conn))

	list, err := repo.List(context.Background(), pagination.Params{Page: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, pagination.DefaultLimit, list.Limit)

	capped, err := repo.List(context.Background(), pagination.Params{Page: 1, Limit: 10_000})
	require.NoError(t, err)
	assert.Equal(t, pagination.MaxLimit, capped.Limit)
}
