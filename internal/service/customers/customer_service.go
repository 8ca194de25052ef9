package customers

import (
	"context"
	"errors"
	"regexp"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/repository"
)

var ErrCustomerNotFound = errors.New("customer not found")

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type CustomerUseCase interface {
	Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
}

type CreateCustomerInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type CustomerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	if err := ValidateCustomer(input); err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

// ValidateCustomer is shared with the guest booking flow, which carries the
// same customer payload.
func ValidateCustomer(input CreateCustomerInput) error {
	verr := domain.NewValidationError()
	if input.Name == "" {
		verr.Add("name", "name is required")
	}
	if input.Email == "" {
		verr.Add("email", "email is required")
	} else if !emailPattern.MatchString(input.Email) {
		verr.Add("email", "email is malformed")
	}
	if input.PhoneNumber == "" {
		verr.Add("phone_number", "phone number is required")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

var _ CustomerUseCase = (*CustomerService)(nil)
