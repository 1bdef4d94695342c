package outbox

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/commercehub/orders-backend/pkg/db/models"
)

// Repository persists outbox rows. The table is a write-once ledger: rows are
// only ever inserted, inside the same transaction as the aggregate they
// describe. The capture pipeline tails the commit log; nothing here marks
// rows published, retries them, or deletes them.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert appends the event within the caller's transaction. Refusing a nil
// tx keeps the fact from ever being committed outside the aggregate's own
// commit.
func (r *Repository) Insert(tx *gorm.DB, event models.OutboxEvent) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Create(&event).Error
}

// FindByAggregateID returns the facts recorded for one aggregate in insertion
// order. Used by read-side checks and tests; the CDC pipeline does not go
// through the application.
func (r *Repository) FindByAggregateID(ctx context.Context, aggregateID string) ([]models.OutboxEvent, error) {
	var rows []models.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("aggregate_id = ?", aggregateID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}
