package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luklinx/carsabeg-sub000/internal/api/middleware"
	"github.com/luklinx/carsabeg-sub000/internal/service/bookings"
	"github.com/luklinx/carsabeg-sub000/internal/service/bookings/models"
	"github.com/luklinx/carsabeg-sub000/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id uuid.UUID, isAdmin bool) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, isAdmin)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func request(id string, isAdmin bool) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil)
	r = r.WithContext(middleware.WithIdentity(r.Context(), 1, isAdmin))
	return mux.SetURLVars(r, map[string]string{"bookingId": id})
}

func TestHandle(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		isAdmin bool
		resp    *models.BookingResponse
		err     error
		code    int
	}{
		{name: "found", isAdmin: true, resp: &models.BookingResponse{ID: id.String()}, code: http.StatusOK},
		{name: "not found", isAdmin: true, err: bookings.ErrBookingNotFound, code: http.StatusNotFound},
		{name: "forbidden", err: bookings.ErrAccessDenied, code: http.StatusForbidden},
		{name: "internal", isAdmin: true, err: bookings.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.resp != nil {
				svc.On("GetByID", mock.Anything, id, tt.isAdmin).Return(tt.resp, nil)
			} else {
				svc.On("GetByID", mock.Anything, id, tt.isAdmin).Return(nil, tt.err)
			}
			w := httptest.NewRecorder()

			NewHandler(svc, logger.NewNop()).Handle(w, request(id.String(), tt.isAdmin))

			assert.Equal(t, tt.code, w.Code)
		})
	}
}
