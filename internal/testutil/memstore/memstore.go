// Package memstore is an in-memory stand-in for the PostgreSQL storage used in unit tests.
// It reproduces the semantics the services depend on: per-slot row locks held until the
// end of the transaction, lock_timeout as SQLSTATE 55P03, rollback of writes, and the
// partial unique index on active ad-hoc bookings.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	bookingRepo "github.com/luklinx/carsabeg-sub000/internal/infra/storage/booking"
	slotRepo "github.com/luklinx/carsabeg-sub000/internal/infra/storage/slot"
	"github.com/luklinx/carsabeg-sub000/pkg/pgerr"
)

// Store holds slots and bookings
type Store struct {
	mu       sync.Mutex
	slots    map[uuid.UUID]*domain.Slot
	bookings map[uuid.UUID]*domain.Booking
	locks    map[uuid.UUID]*sync.Mutex

	// FailNextCreate makes the next booking insert fail with this error
	FailNextCreate error

	now func() time.Time
}

// New creates an empty store
func New() *Store {
	return &Store{
		slots:    make(map[uuid.UUID]*domain.Slot),
		bookings: make(map[uuid.UUID]*domain.Booking),
		locks:    make(map[uuid.UUID]*sync.Mutex),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type txKey struct{}

type tx struct {
	held []*sync.Mutex
	undo []func()
}

func txFrom(ctx context.Context) *tx {
	t, _ := ctx.Value(txKey{}).(*tx)
	return t
}

func (s *Store) onRollback(ctx context.Context, fn func()) {
	if t := txFrom(ctx); t != nil {
		t.undo = append(t.undo, fn)
	}
}

// TxManager emulates txmanager.TransactionManager over the store
type TxManager struct {
	store       *Store
	LockTimeout time.Duration
	Begun       int
	mu          sync.Mutex
}

// NewTxManager creates a transaction manager with the given lock timeout
func (s *Store) NewTxManager(lockTimeout time.Duration) *TxManager {
	return &TxManager{store: s, LockTimeout: lockTimeout}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	m.Begun++
	m.mu.Unlock()

	t := &tx{}
	txCtx := context.WithValue(ctx, txKey{}, t)
	txCtx = context.WithValue(txCtx, lockTimeoutKey{}, m.LockTimeout)

	defer func() {
		if err != nil {
			m.store.mu.Lock()
			for i := len(t.undo) - 1; i >= 0; i-- {
				t.undo[i]()
			}
			m.store.mu.Unlock()
		}
		for _, l := range t.held {
			l.Unlock()
		}
	}()

	return fn(txCtx)
}

type lockTimeoutKey struct{}

func (s *Store) lockSlot(ctx context.Context, id uuid.UUID) error {
	t := txFrom(ctx)
	if t == nil {
		return slotRepo.ErrNotInTransaction
	}

	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()

	timeout, _ := ctx.Value(lockTimeoutKey{}).(time.Duration)
	if timeout <= 0 {
		timeout = time.Hour
	}
	deadline := time.Now().Add(timeout)

	for !l.TryLock() {
		if time.Now().After(deadline) {
			return &pq.Error{Code: pgerr.CodeLockNotAvailable, Message: "canceling statement due to lock timeout"}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		time.Sleep(100 * time.Microsecond)
	}

	t.held = append(t.held, l)
	return nil
}

// HoldSlotLock takes the slot row lock outside of any transaction and returns its release func
func (s *Store) HoldSlotLock(id uuid.UUID) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// SlotRepository returns the slot repository view of the store
func (s *Store) SlotRepository() *SlotRepository {
	return &SlotRepository{s: s}
}

// BookingRepository returns the booking repository view of the store
func (s *Store) BookingRepository() *BookingRepository {
	return &BookingRepository{s: s}
}

// SlotRepository mirrors internal/infra/storage/slot.Repository
type SlotRepository struct {
	s *Store
}

func (r *SlotRepository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	slot.CreatedAt, slot.UpdatedAt = now, now
	stored := *slot
	r.s.slots[slot.ID] = &stored
	r.s.onRollback(ctx, func() { delete(r.s.slots, slot.ID) })

	return slot, nil
}

func (r *SlotRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.slots[id]
	if !ok || slot.DeletedAt != nil {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *slot
	return &cp, nil
}

func (r *SlotRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	if err := r.s.lockSlot(ctx, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SlotRepository) List(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Slot, 0)
	for _, slot := range r.s.slots {
		if slot.DeletedAt != nil {
			continue
		}
		if filter.CarID != nil {
			matches := slot.CarID != nil && *slot.CarID == *filter.CarID
			if !matches && !(filter.IncludeGeneric && slot.CarID == nil) {
				continue
			}
		}
		if filter.From != nil && slot.StartAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !slot.StartAt.Before(*filter.To) {
			continue
		}
		cp := *slot
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (r *SlotRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.slots[id]
	if !ok || slot.DeletedAt != nil {
		return slotRepo.ErrSlotNotFound
	}
	now := r.s.now()
	slot.DeletedAt = &now
	r.s.onRollback(ctx, func() { slot.DeletedAt = nil })
	return nil
}

// BookingRepository mirrors internal/infra/storage/booking.Repository
type BookingRepository struct {
	s *Store
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.FailNextCreate; err != nil {
		r.s.FailNextCreate = nil
		return nil, err
	}

	if b.SlotID == nil && b.IsActive() {
		for _, other := range r.s.bookings {
			if other.IsAdHoc() && other.IsActive() && other.CarID != nil && b.CarID != nil &&
				*other.CarID == *b.CarID && other.ScheduledTime.Equal(b.ScheduledTime) {
				return nil, bookingRepo.ErrDuplicateAdHoc
			}
		}
	}

	now := r.s.now()
	b.CreatedAt, b.UpdatedAt = now, now
	stored := *b
	r.s.bookings[b.ID] = &stored
	r.s.onRollback(ctx, func() { delete(r.s.bookings, b.ID) })

	return b, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *BookingRepository) CountActiveBySlotID(_ context.Context, slotID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.countLocked(slotID), nil
}

func (r *BookingRepository) countLocked(slotID uuid.UUID) int {
	n := 0
	for _, b := range r.s.bookings {
		if b.SlotID != nil && *b.SlotID == slotID && b.IsActive() {
			n++
		}
	}
	return n
}

func (r *BookingRepository) CountActiveBySlotIDs(_ context.Context, slotIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[uuid.UUID]int)
	for _, id := range slotIDs {
		if n := r.countLocked(id); n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}

func (r *BookingRepository) ExistsActiveAdHoc(_ context.Context, carID int64, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, b := range r.s.bookings {
		if b.IsAdHoc() && b.IsActive() && b.CarID != nil && *b.CarID == carID && b.ScheduledTime.Equal(at) {
			return true, nil
		}
	}
	return false, nil
}

func (r *BookingRepository) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if filter.SlotID != nil && (b.SlotID == nil || *b.SlotID != *filter.SlotID) {
			continue
		}
		if filter.CarID != nil && (b.CarID == nil || *b.CarID != *filter.CarID) {
			continue
		}
		if !filter.IncludeCancelled && !b.IsActive() {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledTime.Before(out[j].ScheduledTime) })
	return out, nil
}

func (r *BookingRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok || !b.IsActive() {
		return false, nil
	}
	r.cancelLocked(ctx, b)
	return true, nil
}

func (r *BookingRepository) CancelAllBySlotID(ctx context.Context, slotID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, b := range r.s.bookings {
		if b.SlotID != nil && *b.SlotID == slotID && b.IsActive() {
			r.cancelLocked(ctx, b)
			n++
		}
	}
	return n, nil
}

func (r *BookingRepository) cancelLocked(ctx context.Context, b *domain.Booking) {
	now := r.s.now()
	b.Status = domain.StatusCancelled
	b.CancelledAt = &now
	r.s.onRollback(ctx, func() {
		b.Status = domain.StatusPending
		b.CancelledAt = nil
	})
}
