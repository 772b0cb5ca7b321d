package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM inspection_slots"))
	assert.Equal(t, "update", operation("  UPDATE inspection_bookings SET status = $1"))
	assert.Equal(t, "unknown", operation(""))
}

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	db := &DB{}
	tx := &Tx{}

	assert.Same(t, db, GetExecutor(context.Background(), db))
	assert.False(t, IsInTransaction(context.Background()))

	ctx := WithTx(context.Background(), tx)
	assert.Same(t, tx, GetExecutor(ctx, db))
	assert.True(t, IsInTransaction(ctx))
}
