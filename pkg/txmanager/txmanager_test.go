package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luklinx/carsabeg-sub000/pkg/dbmetrics"
)

type fakeTx struct {
	execs      []string
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	t.execs = append(t.execs, query)
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx    *fakeTx
	opts  *sql.TxOptions
	begun int
	err   error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.begun++
	b.opts = opts
	return b.tx, nil
}

func TestDo_CommitsAndSetsLockTimeout(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b, WithLockTimeout(1500*time.Millisecond))

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, b.tx.committed)
	assert.False(t, b.tx.rolledBack)
	assert.Equal(t, sql.LevelReadCommitted, b.opts.Isolation)
	assert.Equal(t, []string{"SET LOCAL lock_timeout = 1500"}, b.tx.execs)
}

func TestDo_RollsBackOnError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)
	boom := errors.New("slot is full")

	err := m.Do(context.Background(), func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, b.tx.rolledBack)
	assert.False(t, b.tx.committed)
	assert.Empty(t, b.tx.execs)
}

func TestDo_RollsBackOnPanic(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)

	assert.Panics(t, func() {
		_ = m.Do(context.Background(), func(context.Context) error { panic("boom") })
	})
	assert.True(t, b.tx.rolledBack)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, b.begun)
}

func TestDo_CommitErrorIsWrapped(t *testing.T) {
	commitErr := errors.New("could not serialize access")
	b := &fakeBeginner{tx: &fakeTx{commitErr: commitErr}}
	m := NewTransactionManager(b)

	err := m.DoSerializable(context.Background(), func(context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommit)
	assert.ErrorIs(t, err, commitErr)
	assert.Equal(t, sql.LevelSerializable, b.opts.Isolation)
}

func TestDo_BeginError(t *testing.T) {
	b := &fakeBeginner{err: errors.New("pool exhausted")}
	m := NewTransactionManager(b)

	err := m.DoReadOnly(context.Background(), func(context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrBeginTx)
}
