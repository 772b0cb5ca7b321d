package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	"github.com/luklinx/carsabeg-sub000/internal/integrations/listingservice"
	"github.com/luklinx/carsabeg-sub000/internal/service/availability"
	"github.com/luklinx/carsabeg-sub000/internal/service/slots/models"
	"github.com/luklinx/carsabeg-sub000/internal/testutil/memstore"
	"github.com/luklinx/carsabeg-sub000/pkg/logger"
	"github.com/luklinx/carsabeg-sub000/pkg/ptr"
)

type mockListing struct {
	mock.Mock
}

func (m *mockListing) GetCar(ctx context.Context, carID int64) (*listingservice.Car, error) {
	args := m.Called(ctx, carID)
	car, _ := args.Get(0).(*listingservice.Car)
	return car, args.Error(1)
}

type fixture struct {
	store   *memstore.Store
	listing *mockListing
	svc     *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	listing := &mockListing{}
	bookings := store.BookingRepository()

	svc := NewService(
		store.SlotRepository(),
		bookings,
		availability.NewService(bookings),
		listing,
		store.NewTxManager(50*time.Millisecond),
		logger.NewNop(),
	)

	return &fixture{store: store, listing: listing, svc: svc}
}

var base = time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC)

func (f *fixture) seedSlot(t *testing.T, capacity int, carID *int64) *domain.Slot {
	t.Helper()
	slot := &domain.Slot{ID: uuid.New(), CarID: carID, StartAt: base, EndAt: base.Add(time.Hour), Capacity: capacity}
	_, err := f.store.SlotRepository().Create(context.Background(), slot)
	require.NoError(t, err)
	return slot
}

func (f *fixture) seedBooking(t *testing.T, slot *domain.Slot, status domain.BookingStatus) {
	t.Helper()
	_, err := f.store.BookingRepository().Create(context.Background(), &domain.Booking{
		ID:            uuid.New(),
		SlotID:        &slot.ID,
		CarID:         slot.CarID,
		Requester:     domain.Requester{Name: "Ann", Phone: "+2348000000000"},
		ScheduledTime: slot.StartAt,
		Status:        status,
	})
	require.NoError(t, err)
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateSlotRequest
		wantErr error
	}{
		{
			name:    "non-admin",
			req:     models.CreateSlotRequest{StartAt: base, EndAt: base.Add(time.Hour)},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "start equals end",
			req:     models.CreateSlotRequest{IsAdmin: true, StartAt: base, EndAt: base},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "start after end",
			req:     models.CreateSlotRequest{IsAdmin: true, StartAt: base.Add(time.Hour), EndAt: base},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero capacity",
			req:     models.CreateSlotRequest{IsAdmin: true, StartAt: base, EndAt: base.Add(time.Hour), Capacity: ptr.Ptr(0)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative capacity",
			req:     models.CreateSlotRequest{IsAdmin: true, StartAt: base, EndAt: base.Add(time.Hour), Capacity: ptr.Ptr(-1)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing times",
			req:     models.CreateSlotRequest{IsAdmin: true},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_DefaultsCapacityToOne(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), &models.CreateSlotRequest{
		IsAdmin: true,
		StartAt: base.Add(500 * time.Millisecond),
		EndAt:   base.Add(time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Capacity)
	assert.Equal(t, 0, resp.Booked)
	assert.True(t, resp.Available)
	assert.Equal(t, base, resp.StartAt, "instants are truncated to seconds")
	f.listing.AssertNotCalled(t, "GetCar", mock.Anything, mock.Anything)
}

func TestCreate_LargeCapacity(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), &models.CreateSlotRequest{
		IsAdmin: true, StartAt: base, EndAt: base.Add(time.Hour), Capacity: ptr.Ptr(500),
	})

	require.NoError(t, err)
	assert.Equal(t, 500, resp.Capacity)
}

func TestCreate_CarBound(t *testing.T) {
	f := newFixture(t)
	f.listing.On("GetCar", mock.Anything, int64(42)).Return(&listingservice.Car{ID: 42}, nil).Once()

	resp, err := f.svc.Create(context.Background(), &models.CreateSlotRequest{
		IsAdmin:  true,
		StartAt:  base,
		EndAt:    base.Add(time.Hour),
		Capacity: ptr.Ptr(3),
		CarID:    ptr.Ptr(int64(42)),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.CarID)
	assert.Equal(t, int64(42), *resp.CarID)
	f.listing.AssertExpectations(t)
}

func TestCreate_CarNotFound(t *testing.T) {
	f := newFixture(t)
	f.listing.On("GetCar", mock.Anything, int64(7)).Return(nil, listingservice.ErrCarNotFound)

	_, err := f.svc.Create(context.Background(), &models.CreateSlotRequest{
		IsAdmin: true, StartAt: base, EndAt: base.Add(time.Hour), CarID: ptr.Ptr(int64(7)),
	})

	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestCreate_ListingUnavailable(t *testing.T) {
	f := newFixture(t)
	f.listing.On("GetCar", mock.Anything, int64(7)).Return(nil, listingservice.ErrInternal)

	_, err := f.svc.Create(context.Background(), &models.CreateSlotRequest{
		IsAdmin: true, StartAt: base, EndAt: base.Add(time.Hour), CarID: ptr.Ptr(int64(7)),
	})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetByID_ReportsBooked(t *testing.T) {
	f := newFixture(t)
	slot := f.seedSlot(t, 2, nil)
	f.seedBooking(t, slot, domain.StatusPending)
	f.seedBooking(t, slot, domain.StatusCancelled)

	resp, err := f.svc.GetByID(context.Background(), slot.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Booked)
	assert.Equal(t, 1, resp.Remaining)
	assert.True(t, resp.Available)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	carID := int64(42)
	generic := f.seedSlot(t, 1, nil)
	bound := f.seedSlot(t, 1, &carID)
	f.seedSlot(t, 1, ptr.Ptr(int64(99)))
	f.seedBooking(t, generic, domain.StatusPending)

	t.Run("car with generic", func(t *testing.T) {
		resp, err := f.svc.List(context.Background(), &models.ListSlotsRequest{CarID: &carID, IncludeGeneric: true})
		require.NoError(t, err)
		assert.Len(t, resp.Slots, 2)
	})

	t.Run("only available", func(t *testing.T) {
		resp, err := f.svc.List(context.Background(), &models.ListSlotsRequest{
			CarID: &carID, IncludeGeneric: true, OnlyAvailable: true,
		})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 1)
		assert.Equal(t, bound.ID.String(), resp.Slots[0].ID)
	})

	t.Run("all", func(t *testing.T) {
		resp, err := f.svc.List(context.Background(), &models.ListSlotsRequest{})
		require.NoError(t, err)
		assert.Len(t, resp.Slots, 3)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := f.svc.List(context.Background(), &models.ListSlotsRequest{From: &base, To: &base})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDelete(t *testing.T) {
	t.Run("no active bookings", func(t *testing.T) {
		f := newFixture(t)
		slot := f.seedSlot(t, 1, nil)
		f.seedBooking(t, slot, domain.StatusCancelled)

		require.NoError(t, f.svc.Delete(context.Background(), slot.ID, true))

		_, err := f.svc.GetByID(context.Background(), slot.ID)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("active bookings block deletion", func(t *testing.T) {
		f := newFixture(t)
		slot := f.seedSlot(t, 2, nil)
		f.seedBooking(t, slot, domain.StatusPending)

		err := f.svc.Delete(context.Background(), slot.ID, true)
		assert.ErrorIs(t, err, ErrSlotHasActiveBookings)

		_, err = f.svc.GetByID(context.Background(), slot.ID)
		assert.NoError(t, err, "slot must survive a refused delete")
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.svc.Delete(context.Background(), uuid.New(), true), ErrSlotNotFound)
	})

	t.Run("twice", func(t *testing.T) {
		f := newFixture(t)
		slot := f.seedSlot(t, 1, nil)
		require.NoError(t, f.svc.Delete(context.Background(), slot.ID, true))
		assert.ErrorIs(t, f.svc.Delete(context.Background(), slot.ID, true), ErrSlotNotFound)
	})

	t.Run("non-admin", func(t *testing.T) {
		f := newFixture(t)
		slot := f.seedSlot(t, 1, nil)
		assert.ErrorIs(t, f.svc.Delete(context.Background(), slot.ID, false), ErrAccessDenied)
	})

	t.Run("row locked", func(t *testing.T) {
		f := newFixture(t)
		slot := f.seedSlot(t, 1, nil)
		release := f.store.HoldSlotLock(slot.ID)
		defer release()

		err := f.svc.Delete(context.Background(), slot.ID, true)
		assert.ErrorIs(t, err, ErrBusy)
	})
}

type failingTx struct{ err error }

func (f failingTx) Do(context.Context, func(ctx context.Context) error) error { return f.err }

func TestDelete_TxError(t *testing.T) {
	store := memstore.New()
	bookings := store.BookingRepository()
	svc := NewService(store.SlotRepository(), bookings, availability.NewService(bookings),
		&mockListing{}, failingTx{err: errors.New("begin failed")}, logger.NewNop())

	err := svc.Delete(context.Background(), uuid.New(), true)

	assert.ErrorIs(t, err, ErrInternal)
}
