package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/commercehub/orders-backend/pkg/enums"
)

// Order is the aggregate root. Its lines and the outbox fact describing its
// creation are written in the same transaction.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	Status     enums.OrderStatus `gorm:"column:status;not null;default:'PENDING'"`
	Lines      []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
