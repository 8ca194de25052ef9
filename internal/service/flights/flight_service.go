package flights

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/repository"
)

var (
	ErrFlightNotFound = errors.New("flight not found")
	ErrFlightExists   = errors.New("flight number already exists")
)

// Flight numbers are two capital letters followed by four digits, e.g. SC8888.
var flightNoPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{4}$`)

type FlightUseCase interface {
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type CreateFlightInput struct {
	FlightNo    string    `json:"flight_no"`
	StartPlace  string    `json:"start_place"`
	Destination string    `json:"destination"`
	SeatsNumber string    `json:"seats_number"`
	FlightDate  time.Time `json:"flight_date"`
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	verr := domain.NewValidationError()
	if !flightNoPattern.MatchString(input.FlightNo) {
		verr.Add("flight_no", "flight number must be two capital letters followed by four digits")
	}
	if input.StartPlace == "" {
		verr.Add("start_place", "start place is required")
	}
	if input.Destination == "" {
		verr.Add("destination", "destination is required")
	}
	if input.Destination != "" && input.Destination == input.StartPlace {
		verr.Add("destination", "destination must differ from start place")
	}
	if !input.FlightDate.After(time.Now()) {
		verr.Add("flight_date", "flight date must be in the future")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if _, err := s.repo.GetByFlightNo(ctx, input.FlightNo); err == nil {
		return nil, ErrFlightExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	flight := &domain.Flight{
		FlightNo:    input.FlightNo,
		StartPlace:  input.StartPlace,
		Destination: input.Destination,
		SeatsNumber: input.SeatsNumber,
		FlightDate:  input.FlightDate,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return flight, nil
}

var _ FlightUseCase = (*FlightService)(nil)
