package customers

import (
	"context"
	"testing"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

func TestCustomerService_Create_Success(t *testing.T) {
	repo := &MockCustomerRepository{}
	service := NewCustomerService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Customer")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Customer).ID = 1
		}).Return(nil).Once()

	customer, err := service.Create(ctx, CreateCustomerInput{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		PhoneNumber: "01234567890",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), customer.ID)
	assert.Equal(t, "Jane Doe", customer.Name)
	repo.AssertExpectations(t)
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	repo := &MockCustomerRepository{}
	service := NewCustomerService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(99)).Return(nil, repository.ErrNotFound).Once()

	customer, err := service.GetByID(ctx, 99)

	assert.Nil(t, customer)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestValidateCustomer(t *testing.T) {
	tests := []struct {
		name  string
		input CreateCustomerInput
		field string
	}{
		{
			name:  "missing name",
			input: CreateCustomerInput{Email: "jane@example.com", PhoneNumber: "01234567890"},
			field: "name",
		},
		{
			name:  "missing email",
			input: CreateCustomerInput{Name: "Jane Doe", PhoneNumber: "01234567890"},
			field: "email",
		},
		{
			name:  "malformed email",
			input: CreateCustomerInput{Name: "Jane Doe", Email: "not-an-email", PhoneNumber: "01234567890"},
			field: "email",
		},
		{
			name:  "missing phone number",
			input: CreateCustomerInput{Name: "Jane Doe", Email: "jane@example.com"},
			field: "phone_number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCustomer(tt.input)

			var verr *domain.ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	assert.NoError(t, ValidateCustomer(CreateCustomerInput{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		PhoneNumber: "01234567890",
	}))
}
