package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil, ""))

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "orders_pkey"}
	assert.True(t, IsUniqueViolation(pgErr, ""))
	assert.True(t, IsUniqueViolation(pgErr, "orders_pkey"))
	assert.False(t, IsUniqueViolation(pgErr, "order_lines_pkey"))

	sqliteErr := errors.New("UNIQUE constraint failed: orders.id")
	assert.True(t, IsUniqueViolation(sqliteErr, ""))

	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}

func TestIsConstraintViolation(t *testing.T) {
	assert.True(t, IsConstraintViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsConstraintViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, IsConstraintViolation(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsConstraintViolation(errors.New("CHECK constraint failed: quantity")))
	assert.False(t, IsConstraintViolation(errors.New("boom")))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(context.DeadlineExceeded))
	assert.True(t, IsTransient(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsTransient(&pgconn.PgError{Code: "08006"}))
	assert.True(t, IsTransient(errors.New("dial tcp: connection refused")))
	assert.False(t, IsTransient(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsTransient(errors.New("boom")))
	assert.False(t, IsTransient(nil))
}
