package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	"github.com/luklinx/carsabeg-sub000/internal/notification"
	createBooking "github.com/luklinx/carsabeg-sub000/internal/usecase/create_booking"
	"github.com/luklinx/carsabeg-sub000/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*createBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func do(t *testing.T, uc *mockUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewNop())
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return w
}

func TestHandle_Created(t *testing.T) {
	slotID := uuid.New()
	booking := &domain.Booking{
		ID:            uuid.New(),
		SlotID:        &slotID,
		Requester:     domain.Requester{Name: "Ann", Phone: "+100"},
		ScheduledTime: time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC),
		Status:        domain.StatusPending,
	}

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.SlotID != nil && *req.SlotID == slotID && req.Name == "Ann" && req.ScheduledTime == nil
	})).Return(&createBooking.Response{Booking: booking, Notification: notification.EnqueueQueued}, nil)

	w := do(t, uc, fmt.Sprintf(`{"slotId":%q,"name":"Ann","phone":"+100"}`, slotID))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp CreateBookingResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "queued", resp.Notification)
	assert.Equal(t, booking.ID.String(), resp.Booking.ID)
	assert.Equal(t, "slot", resp.Booking.Kind)
	uc.AssertExpectations(t)
}

func TestHandle_AdHocRequest(t *testing.T) {
	at := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	carID := int64(7)
	booking := &domain.Booking{ID: uuid.New(), CarID: &carID, ScheduledTime: at, Status: domain.StatusPending}

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.SlotID == nil && req.CarID != nil && *req.CarID == 7 && req.ScheduledTime.Equal(at)
	})).Return(&createBooking.Response{Booking: booking, Notification: notification.EnqueueDisabled}, nil)

	w := do(t, uc, `{"carId":7,"scheduledTime":"2026-11-01T10:00:00Z","name":"Ann","phone":"+100"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"adhoc"`)
	assert.Contains(t, w.Body.String(), `"notification":"disabled"`)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{`},
		{name: "unknown field", body: `{"name":"a","phone":"1","userId":1}`},
		{name: "missing phone", body: `{"name":"a"}`},
		{name: "invalid slot id", body: `{"slotId":"nope","name":"a","phone":"1"}`},
		{name: "non-positive car", body: `{"carId":0,"name":"a","phone":"1"}`},
		{name: "name too long", body: fmt.Sprintf(`{"name":%q,"phone":"1"}`, strings.Repeat("x", 121))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			w := do(t, uc, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{err: createBooking.ErrInvalidInput, code: http.StatusBadRequest},
		{err: createBooking.ErrSlotNotFound, code: http.StatusNotFound},
		{err: createBooking.ErrCarNotFound, code: http.StatusNotFound},
		{err: createBooking.ErrSlotFull, code: http.StatusConflict},
		{err: createBooking.ErrSlotStarted, code: http.StatusConflict},
		{err: createBooking.ErrDuplicateBooking, code: http.StatusConflict},
		{err: createBooking.ErrBusy, code: http.StatusServiceUnavailable},
		{err: createBooking.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: detail", tt.err))

			w := do(t, uc, fmt.Sprintf(`{"slotId":%q,"name":"a","phone":"1"}`, uuid.New()))

			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
