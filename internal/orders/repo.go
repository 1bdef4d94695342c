package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/commercehub/orders-backend/pkg/db"
	"github.com/commercehub/orders-backend/pkg/db/models"
	pkgerrors "github.com/commercehub/orders-backend/pkg/errors"
	"github.com/commercehub/orders-backend/pkg/outbox"
	"github.com/commercehub/orders-backend/pkg/pagination"
)

type repository struct {
	db     *gorm.DB
	outbox *outbox.Repository
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB, ob *outbox.Repository) Repository {
	return &repository{db: db, outbox: ob}
}

// Create writes the order, its lines, and the creation fact inside one
// transaction. Any failure rolls back every row.
func (r *repository) Create(ctx context.Context, order *models.Order, lines []models.OrderLine, fact models.OutboxEvent) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lines are inserted explicitly; keep gorm from cascading them twice.
		bare := *order
		bare.Lines = nil
		if err := tx.Create(&bare).Error; err != nil {
			return err
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}
		return r.outbox.Insert(tx, fact)
	})
	if err != nil {
		return classifyWriteError(err)
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, classifyReadError(err)
	}

	var lines []models.OrderLine
	err = r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("line_number ASC").
		Find(&lines).Error
	if err != nil {
		return nil, classifyReadError(err)
	}

	detail := &OrderDetail{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Lines:      make([]OrderLineView, 0, len(lines)),
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
	for _, line := range lines {
		detail.Lines = append(detail.Lines, OrderLineView{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return detail, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) (*OrderList, error) {
	params = pagination.Normalize(params)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, classifyReadError(err)
	}

	var rows []models.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, classifyReadError(err)
	}

	list := &OrderList{
		Orders: make([]OrderSummary, 0, len(rows)),
		Page:   params.Page,
		Limit:  params.Limit,
		Total:  total,
	}
	for _, row := range rows {
		list.Orders = append(list.Orders, OrderSummary{
			ID:         row.ID,
			CustomerID: row.CustomerID,
			Status:     row.Status,
			CreatedAt:  row.CreatedAt,
		})
	}
	return list, nil
}

// classifyWriteError maps driver errors onto the service taxonomy. Constraint
// violations are permanent; the caller must not retry them blindly. Transient
// store failures are safe to retry because identities are pre-generated.
func classifyWriteError(err error) error {
	switch {
	case dbpkg.IsUniqueViolation(err, ""):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "record already exists")
	case dbpkg.IsConstraintViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "constraint violated")
	case dbpkg.IsTransient(err):
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store unavailable")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order write failed")
	}
}

func classifyReadError(err error) error {
	if dbpkg.IsTransient(err) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store unavailable")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order read failed")
}
