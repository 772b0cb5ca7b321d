package create_slot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luklinx/carsabeg-sub000/internal/api/middleware"
	"github.com/luklinx/carsabeg-sub000/internal/service/slots"
	"github.com/luklinx/carsabeg-sub000/internal/service/slots/models"
	"github.com/luklinx/carsabeg-sub000/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.SlotResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

const validBody = `{"startAt":"2026-11-01T10:00:00Z","endAt":"2026-11-01T11:00:00Z","capacity":3,"carId":7}`

func request(body string, isAdmin bool) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/slots", strings.NewReader(body))
	return r.WithContext(middleware.WithIdentity(r.Context(), 1, isAdmin))
}

func TestHandle_Created(t *testing.T) {
	svc := &mockService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateSlotRequest) bool {
		return req.IsAdmin && *req.Capacity == 3 && *req.CarID == 7 && req.StartAt.Before(req.EndAt)
	})).Return(&models.SlotResponse{ID: "s1", Capacity: 3}, nil)
	w := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(w, request(validBody, true))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"s1"`)
	svc.AssertExpectations(t)
}

func TestHandle_BadRequest(t *testing.T) {
	for _, body := range []string{
		`{`,
		`{"endAt":"2026-11-01T11:00:00Z"}`,
		`{"startAt":"2026-11-01T10:00:00Z","endAt":"2026-11-01T11:00:00Z","capacity":0}`,
		`{"startAt":"2026-11-01T10:00:00Z","endAt":"2026-11-01T11:00:00Z","carId":-3}`,
	} {
		svc := &mockService{}
		w := httptest.NewRecorder()

		NewHandler(svc, logger.NewNop()).Handle(w, request(body, true))

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{err: slots.ErrAccessDenied, code: http.StatusForbidden},
		{err: slots.ErrInvalidInput, code: http.StatusBadRequest},
		{err: slots.ErrCarNotFound, code: http.StatusNotFound},
		{err: slots.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := &mockService{}
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)
		w := httptest.NewRecorder()

		NewHandler(svc, logger.NewNop()).Handle(w, request(validBody, false))

		assert.Equal(t, tt.code, w.Code, tt.err.Error())
	}
}
