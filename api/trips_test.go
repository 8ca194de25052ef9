package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/service/booking"
	"github.com/Domenick1991/travelagent/internal/service/travelagent"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTravelAgentUseCase struct {
	mock.Mock
}

func (m *MockTravelAgentUseCase) BookTrip(ctx context.Context, input travelagent.BookTripInput) (*domain.TripBooking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripBooking), args.Error(1)
}

func (m *MockTravelAgentUseCase) CancelTrip(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTravelAgentUseCase) GetByID(ctx context.Context, id int64) (*domain.TripBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripBooking), args.Error(1)
}

func (m *MockTravelAgentUseCase) List(ctx context.Context) ([]domain.TripBooking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TripBooking), args.Error(1)
}

func newTripRouter(service travelagent.TravelAgentUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewTripHandler(service).Register(router.Group("/api/v1/trips"))
	return router
}

func TestTripHandler_Book_Success(t *testing.T) {
	service := &MockTravelAgentUseCase{}
	router := newTripRouter(service)

	trip := &domain.TripBooking{
		ID:               41,
		Reference:        "ref-41",
		FlightBookingID:  11,
		TaxiBookingID:    21,
		TaxiID:           1,
		HotelBookingID:   31,
		HotelID:          1,
		AgentBookingDate: time.Date(2999, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	service.On("BookTrip", mock.Anything, mock.MatchedBy(func(in travelagent.BookTripInput) bool {
		return in.CustomerID == 1 && in.FlightID == 2 && in.TaxiID == 1 && in.HotelID == 1
	})).Return(trip, nil).Once()

	body := `{"customer_id":1,"flight_id":2,"booking_date":"2999-01-01T10:00:00Z","taxi_id":1,"hotel_id":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(41), resp["id"])
	assert.Equal(t, "ref-41", resp["reference"])
	assert.Equal(t, float64(21), resp["taxi_booking_id"])
	service.AssertExpectations(t)
}

func TestTripHandler_Book_BadDate(t *testing.T) {
	service := &MockTravelAgentUseCase{}
	router := newTripRouter(service)

	body := `{"customer_id":1,"flight_id":2,"booking_date":"tomorrow","taxi_id":1,"hotel_id":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "BookTrip")
}

func TestTripHandler_Book_DuplicateIsConflict(t *testing.T) {
	service := &MockTravelAgentUseCase{}
	router := newTripRouter(service)

	service.On("BookTrip", mock.Anything, mock.Anything).Return(nil, booking.ErrDuplicateBooking).Once()

	body := `{"customer_id":1,"flight_id":2,"booking_date":"2999-01-01T10:00:00Z","taxi_id":1,"hotel_id":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTripHandler_Book_CompensationFailure(t *testing.T) {
	service := &MockTravelAgentUseCase{}
	router := newTripRouter(service)

	cerr := &travelagent.CompensationError{
		Failures: []travelagent.CompensationFailure{
			{Resource: domain.ResourceTaxi, ReservationID: 21, Err: assert.AnError},
		},
	}
	service.On("BookTrip", mock.Anything, mock.Anything).Return(nil, cerr).Once()

	body := `{"customer_id":1,"flight_id":2,"booking_date":"2999-01-01T10:00:00Z","taxi_id":1,"hotel_id":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "compensation_failed", resp["error"])

	orphaned := resp["orphaned"].([]interface{})
	assert.Len(t, orphaned, 1)
	first := orphaned[0].(map[string]interface{})
	assert.Equal(t, "taxi", first["resource"])
	assert.Equal(t, float64(21), first["reservation_id"])
}

func TestTripHandler_Cancel_Success(t *testing.T) {
	service := &MockTravelAgentUseCase{}
	router := newTripRouter(service)

	service.On("CancelTrip", mock.Anything, int64(41)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/trips/41", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	service.AssertExpectations(t)
}

func TestTripHandler_Cancel_NotFound(t *testing.T) {
	service := &MockTravelAgentUseCase{}
	router := newTripRouter(service)

	service.On("CancelTrip", mock.Anything, int64(99)).Return(travelagent.ErrTripNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/trips/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTripHandler_List(t *testing.T) {
	service := &MockTravelAgentUseCase{}
	router := newTripRouter(service)

	trips := []domain.TripBooking{
		{ID: 1, Reference: "ref-1", AgentBookingDate: time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Reference: "ref-2", AgentBookingDate: time.Date(2999, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	service.On("List", mock.Anything).Return(trips, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "ref-1", resp[0]["reference"])
}
