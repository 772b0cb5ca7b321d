package get_slot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luklinx/carsabeg-sub000/internal/service/slots"
	"github.com/luklinx/carsabeg-sub000/internal/service/slots/models"
	"github.com/luklinx/carsabeg-sub000/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id uuid.UUID) (*models.SlotResponse, error) {
	args := m.Called(ctx, id)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.SlotResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func request(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/slots/"+id, nil)
	return mux.SetURLVars(r, map[string]string{"slotId": id})
}

func TestHandle(t *testing.T) {
	id := uuid.New()

	svc := &mockService{}
	svc.On("GetByID", mock.Anything, id).
		Return(&models.SlotResponse{ID: id.String(), Capacity: 2, Booked: 2}, nil).Once()
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, request(id.String()))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"booked":2`)

	svc.On("GetByID", mock.Anything, id).Return(nil, slots.ErrSlotNotFound).Once()
	w = httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, request(id.String()))
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.On("GetByID", mock.Anything, id).Return(nil, slots.ErrInternal).Once()
	w = httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, request(id.String()))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, request("42"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
