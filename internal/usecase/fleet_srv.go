package usecase

import (
	"context"
	"fmt"

	"fleet-booking/internal/data/repository"
	"fleet-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FleetService exposes the read side of the catalog: cars, trip plans and
// accepted payment methods.
type FleetService interface {
	ListCars(ctx context.Context) ([]response.CarResponse, error)
	GetCar(ctx context.Context, carID string) (*response.CarResponse, error)
	ListTripPlans(ctx context.Context) ([]response.TripPlanResponse, error)
	ListPaymentMethods(ctx context.Context) ([]response.PaymentMethodResponse, error)
}

type fleetService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFleetService(repo *repository.Repository, log *zap.Logger) FleetService {
	return &fleetService{
		repo: repo,
		log:  log.With(zap.String("service", "fleet")),
	}
}

func (s *fleetService) ListCars(ctx context.Context) ([]response.CarResponse, error) {
	cars, err := s.repo.Car.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}

	responses := make([]response.CarResponse, len(cars))
	for i, car := range cars {
		responses[i] = response.CarToResponse(car)
	}

	return responses, nil
}

func (s *fleetService) GetCar(ctx context.Context, carID string) (*response.CarResponse, error) {
	id, err := uuid.Parse(carID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid car ID %s", ErrValidation, carID)
	}

	car, err := s.repo.Car.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get car %s: %w", carID, err)
	}
	if car == nil {
		return nil, fmt.Errorf("%w: car %s", ErrNotFound, carID)
	}

	resp := response.CarToResponse(car)
	return &resp, nil
}

func (s *fleetService) ListTripPlans(ctx context.Context) ([]response.TripPlanResponse, error) {
	plans, err := s.repo.TripPlan.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trip plans: %w", err)
	}

	responses := make([]response.TripPlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = response.TripPlanToResponse(plan)
	}

	return responses, nil
}

func (s *fleetService) ListPaymentMethods(ctx context.Context) ([]response.PaymentMethodResponse, error) {
	methods, err := s.repo.PaymentMethod.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}

	responses := make([]response.PaymentMethodResponse, len(methods))
	for i, method := range methods {
		responses[i] = response.PaymentMethodToResponse(method)
	}

	return responses, nil
}
