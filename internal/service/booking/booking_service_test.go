package booking

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/repository"
	"github.com/Domenick1991/travelagent/internal/service/customers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock структуры

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) CreateWithCustomer(ctx context.Context, customer *domain.Customer, booking *domain.Booking) error {
	args := m.Called(ctx, customer, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ExistsForFlightDay(ctx context.Context, flightID int64, day time.Time) (bool, error) {
	args := m.Called(ctx, flightID, day)
	return args.Bool(0), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByFlightNo(ctx context.Context, flightNo string) (*domain.Flight, error) {
	args := m.Called(ctx, flightNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) AcquireBookingDayLock(ctx context.Context, flightID int64, day time.Time, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, flightID, day, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) ReleaseBookingDayLock(ctx context.Context, flightID int64, day time.Time) error {
	args := m.Called(ctx, flightID, day)
	return args.Error(0)
}

type bookingMocks struct {
	bookings  *MockBookingRepository
	customers *MockCustomerRepository
	flights   *MockFlightRepository
	cache     *MockCache
}

func newBookingService() (*BookingService, *bookingMocks) {
	m := &bookingMocks{
		bookings:  &MockBookingRepository{},
		customers: &MockCustomerRepository{},
		flights:   &MockFlightRepository{},
		cache:     &MockCache{},
	}
	service := NewBookingService(m.bookings, m.customers, m.flights, m.cache, time.Minute)
	return service, m
}

func futureDate() time.Time {
	return time.Now().UTC().AddDate(0, 0, 7).Truncate(time.Second)
}

// Тест 1: создание бронирования - успешный сценарий
func TestBookingService_Create_Success(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	date := futureDate()
	day := domain.BookingDay(date)

	m.customers.On("GetByID", ctx, int64(1)).Return(&domain.Customer{ID: 1}, nil).Once()
	m.flights.On("GetByID", ctx, int64(2)).Return(&domain.Flight{ID: 2}, nil).Once()
	m.cache.On("AcquireBookingDayLock", ctx, int64(2), day, time.Minute).Return(true, nil).Once()
	m.bookings.On("ExistsForFlightDay", ctx, int64(2), day).Return(false, nil).Once()
	m.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Booking).ID = 11
		}).Return(nil).Once()
	m.cache.On("ReleaseBookingDayLock", ctx, int64(2), day).Return(nil).Once()

	booking, err := service.Create(ctx, CreateBookingInput{CustomerID: 1, FlightID: 2, BookingDate: date})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, int64(11), booking.ID)
	assert.Equal(t, int64(1), booking.CustomerID)
	assert.Equal(t, int64(2), booking.FlightID)

	m.bookings.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

// Тест 2: дата в прошлом - ошибка валидации без обращений к хранилищу
func TestBookingService_Create_PastDate(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	booking, err := service.Create(ctx, CreateBookingInput{
		CustomerID:  1,
		FlightID:    2,
		BookingDate: time.Now().AddDate(0, 0, -1),
	})

	assert.Nil(t, booking)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "booking_date")

	m.customers.AssertNotCalled(t, "GetByID")
	m.bookings.AssertNotCalled(t, "Create")
}

// Тест 3: клиент не найден
func TestBookingService_Create_CustomerNotFound(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	m.customers.On("GetByID", ctx, int64(1)).Return(nil, repository.ErrNotFound).Once()

	booking, err := service.Create(ctx, CreateBookingInput{CustomerID: 1, FlightID: 2, BookingDate: futureDate()})

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	m.bookings.AssertNotCalled(t, "Create")
}

// Тест 4: рейс не найден
func TestBookingService_Create_FlightNotFound(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	m.customers.On("GetByID", ctx, int64(1)).Return(&domain.Customer{ID: 1}, nil).Once()
	m.flights.On("GetByID", ctx, int64(2)).Return(nil, repository.ErrNotFound).Once()

	booking, err := service.Create(ctx, CreateBookingInput{CustomerID: 1, FlightID: 2, BookingDate: futureDate()})

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrFlightNotFound)
	m.bookings.AssertNotCalled(t, "Create")
}

// Тест 5: дубликат - тот же рейс и тот же день, другое время суток
func TestBookingService_Create_DuplicateSameDay(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	date := futureDate()
	day := domain.BookingDay(date)

	m.customers.On("GetByID", ctx, int64(1)).Return(&domain.Customer{ID: 1}, nil).Once()
	m.flights.On("GetByID", ctx, int64(2)).Return(&domain.Flight{ID: 2}, nil).Once()
	m.cache.On("AcquireBookingDayLock", ctx, int64(2), day, time.Minute).Return(true, nil).Once()
	m.bookings.On("ExistsForFlightDay", ctx, int64(2), day).Return(true, nil).Once()
	m.cache.On("ReleaseBookingDayLock", ctx, int64(2), day).Return(nil).Once()

	booking, err := service.Create(ctx, CreateBookingInput{CustomerID: 1, FlightID: 2, BookingDate: date})

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	m.bookings.AssertNotCalled(t, "Create")
	m.cache.AssertExpectations(t)
}

// Тест 6: конкурентное создание - блокировка занята
func TestBookingService_Create_LockContention(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	date := futureDate()
	day := domain.BookingDay(date)

	m.customers.On("GetByID", ctx, int64(1)).Return(&domain.Customer{ID: 1}, nil).Once()
	m.flights.On("GetByID", ctx, int64(2)).Return(&domain.Flight{ID: 2}, nil).Once()
	m.cache.On("AcquireBookingDayLock", ctx, int64(2), day, time.Minute).Return(false, nil).Once()

	booking, err := service.Create(ctx, CreateBookingInput{CustomerID: 1, FlightID: 2, BookingDate: date})

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	m.bookings.AssertNotCalled(t, "ExistsForFlightDay")
	m.bookings.AssertNotCalled(t, "Create")
}

// Тест 7: проверка дубликата идет по календарному дню UTC
func TestBookingService_Create_DayTruncation(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	// 18:30 по времени +02:00 это 16:30 UTC того же дня
	loc := time.FixedZone("UTC+2", 2*60*60)
	future := time.Now().AddDate(0, 0, 10)
	date := time.Date(future.Year(), future.Month(), future.Day(), 18, 30, 0, 0, loc)
	utc := date.UTC()
	expectedDay := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)

	m.customers.On("GetByID", ctx, int64(1)).Return(&domain.Customer{ID: 1}, nil).Once()
	m.flights.On("GetByID", ctx, int64(2)).Return(&domain.Flight{ID: 2}, nil).Once()
	m.cache.On("AcquireBookingDayLock", ctx, int64(2), expectedDay, time.Minute).Return(true, nil).Once()
	m.bookings.On("ExistsForFlightDay", ctx, int64(2), expectedDay).Return(false, nil).Once()
	m.bookings.On("Create", ctx, mock.Anything).Return(nil).Once()
	m.cache.On("ReleaseBookingDayLock", ctx, int64(2), expectedDay).Return(nil).Once()

	_, err := service.Create(ctx, CreateBookingInput{CustomerID: 1, FlightID: 2, BookingDate: date})

	assert.NoError(t, err)
	m.bookings.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

// Тест 8: гостевое бронирование - клиент и бронь создаются вместе
func TestBookingService_CreateForGuest_Success(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	date := futureDate()
	day := domain.BookingDay(date)

	m.flights.On("GetByID", ctx, int64(2)).Return(&domain.Flight{ID: 2}, nil).Once()
	m.cache.On("AcquireBookingDayLock", ctx, int64(2), day, time.Minute).Return(true, nil).Once()
	m.bookings.On("ExistsForFlightDay", ctx, int64(2), day).Return(false, nil).Once()
	m.bookings.On("CreateWithCustomer", ctx, mock.AnythingOfType("*domain.Customer"), mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Customer).ID = 5
			b := args.Get(2).(*domain.Booking)
			b.ID = 11
			b.CustomerID = 5
		}).Return(nil).Once()
	m.cache.On("ReleaseBookingDayLock", ctx, int64(2), day).Return(nil).Once()

	booking, customer, err := service.CreateForGuest(ctx, GuestBookingInput{
		Customer: customers.CreateCustomerInput{
			Name:        "Jane Doe",
			Email:       "jane@example.com",
			PhoneNumber: "01234567890",
		},
		FlightID:    2,
		BookingDate: date,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), booking.ID)
	assert.Equal(t, int64(5), customer.ID)
	assert.Equal(t, int64(5), booking.CustomerID)
	m.bookings.AssertExpectations(t)
}

// Тест 9: гостевое бронирование - невалидный клиент, хранилище не трогаем
func TestBookingService_CreateForGuest_InvalidCustomer(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	booking, customer, err := service.CreateForGuest(ctx, GuestBookingInput{
		Customer: customers.CreateCustomerInput{
			Name:        "Jane Doe",
			Email:       "not-an-email",
			PhoneNumber: "01234567890",
		},
		FlightID:    2,
		BookingDate: futureDate(),
	})

	assert.Nil(t, booking)
	assert.Nil(t, customer)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	m.flights.AssertNotCalled(t, "GetByID")
	m.bookings.AssertNotCalled(t, "CreateWithCustomer")
}

// Тест 10: удаление несуществующего бронирования
func TestBookingService_Delete_NotFound(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	m.bookings.On("Delete", ctx, int64(99)).Return(repository.ErrNotFound).Once()

	err := service.Delete(ctx, 99)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingService_GetByID(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	m.bookings.On("GetByID", ctx, int64(11)).Return(&domain.Booking{ID: 11}, nil).Once()

	booking, err := service.GetByID(ctx, 11)

	assert.NoError(t, err)
	assert.Equal(t, int64(11), booking.ID)
}

func TestBookingService_ListByFlight(t *testing.T) {
	service, m := newBookingService()
	ctx := context.Background()

	expected := []domain.Booking{{ID: 1, FlightID: 2}, {ID: 2, FlightID: 2}}
	m.bookings.On("ListByFlight", ctx, int64(2)).Return(expected, nil).Once()

	got, err := service.ListByFlight(ctx, 2)

	assert.NoError(t, err)
	assert.Equal(t, expected, got)
}
