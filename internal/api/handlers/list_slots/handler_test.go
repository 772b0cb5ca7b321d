package list_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/luklinx/carsabeg-sub000/internal/service/slots"
	"github.com/luklinx/carsabeg-sub000/internal/service/slots/models"
	"github.com/luklinx/carsabeg-sub000/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.SlotListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestParseQuery(t *testing.T) {
	req, err := parseQuery(url.Values{"carId": {"7"}, "onlyAvailable": {"true"}, "from": {"2026-11-01T00:00:00Z"}})
	require.NoError(t, err)
	require.NotNil(t, req.CarID)
	assert.Equal(t, int64(7), *req.CarID)
	assert.True(t, req.IncludeGeneric, "car filter includes generic slots by default")
	assert.True(t, req.OnlyAvailable)
	require.NotNil(t, req.From)
	assert.True(t, req.From.Equal(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, req.To)

	req, err = parseQuery(url.Values{"carId": {"7"}, "includeGeneric": {"false"}})
	require.NoError(t, err)
	assert.False(t, req.IncludeGeneric)

	req, err = parseQuery(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, req.CarID)

	for _, q := range []url.Values{
		{"carId": {"x"}},
		{"carId": {"-1"}},
		{"onlyAvailable": {"maybe"}},
		{"from": {"yesterday"}},
	} {
		_, err := parseQuery(q)
		assert.Error(t, err, q.Encode())
	}
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.Anything).
		Return(&models.SlotListResponse{Slots: []models.SlotResponse{{ID: "a", Capacity: 2, Remaining: 1, Available: true}}}, nil)
	w := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/slots?carId=7", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"remaining":1`)
}

func TestHandle_Errors(t *testing.T) {
	svc := &mockService{}
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/slots?carId=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("List", mock.Anything, mock.Anything).Return(nil, slots.ErrInvalidInput).Once()
	w = httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("List", mock.Anything, mock.Anything).Return(nil, slots.ErrInternal).Once()
	w = httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
