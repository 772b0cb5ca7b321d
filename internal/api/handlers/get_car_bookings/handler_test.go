package get_car_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

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

func (m *mockService) ListByCar(ctx context.Context, carID int64, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, carID, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.BookingListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func request(carID string, isAdmin bool) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/cars/"+carID+"/bookings", nil)
	r = r.WithContext(middleware.WithIdentity(r.Context(), 1, isAdmin))
	return mux.SetURLVars(r, map[string]string{"carId": carID})
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("ListByCar", mock.Anything, int64(7), &models.ListBookingsRequest{IsAdmin: true}).
		Return(&models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil)
	w := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(w, request("7", true))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookings":[]}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	for _, carID := range []string{"abc", "0", "-5"} {
		w := httptest.NewRecorder()
		NewHandler(&mockService{}, logger.NewNop()).Handle(w, request(carID, true))
		assert.Equal(t, http.StatusBadRequest, w.Code, carID)
	}

	svc := &mockService{}
	svc.On("ListByCar", mock.Anything, int64(7), mock.Anything).Return(nil, bookings.ErrAccessDenied)
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, request("7", false))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
