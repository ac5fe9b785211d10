package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
)

type FleetCarStore interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]model.Car, error)
	ListAvailable(ctx context.Context, tenantID uuid.UUID) ([]model.Car, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Car, error)
	Create(ctx context.Context, tenantID uuid.UUID, car model.Car) (*model.Car, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch repository.CarPatch) (*model.Car, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type EmployeeStore interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]model.Employee, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Employee, error)
	Create(ctx context.Context, tenantID uuid.UUID, employee model.Employee) (*model.Employee, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch repository.EmployeePatch) (*model.Employee, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// FleetService manages cars and their drivers, including the optional
// one-to-one link between them. The store's unique index on employees.car_id
// keeps a car from being claimed by two drivers.
type FleetService struct {
	cars      FleetCarStore
	employees EmployeeStore
}

func NewFleetService(cars FleetCarStore, employees EmployeeStore) *FleetService {
	return &FleetService{cars: cars, employees: employees}
}

func (s *FleetService) ListCars(ctx context.Context, tenantID uuid.UUID) ([]model.Car, error) {
	cars, err := s.cars.List(ctx, tenantID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return cars, nil
}

// ListAvailableCars returns cars no driver is linked to.
func (s *FleetService) ListAvailableCars(ctx context.Context, tenantID uuid.UUID) ([]model.Car, error) {
	cars, err := s.cars.ListAvailable(ctx, tenantID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return cars, nil
}

func (s *FleetService) GetCar(ctx context.Context, tenantID, id uuid.UUID) (*model.Car, error) {
	car, err := s.cars.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return car, nil
}

func (s *FleetService) CreateCar(ctx context.Context, tenantID uuid.UUID, car model.Car) (*model.Car, error) {
	if strings.TrimSpace(car.Regnr) == "" {
		return nil, fmt.Errorf("%w: regnr is required", ErrInvalidInput)
	}
	if car.Status == "" {
		car.Status = model.CarAvailable
	}

	saved, err := s.cars.Create(ctx, tenantID, car)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return saved, nil
}

func (s *FleetService) UpdateCar(ctx context.Context, tenantID, id uuid.UUID, patch repository.CarPatch) (*model.Car, error) {
	if patch.Regnr != nil && strings.TrimSpace(*patch.Regnr) == "" {
		return nil, fmt.Errorf("%w: regnr must not be empty", ErrInvalidInput)
	}

	saved, err := s.cars.Update(ctx, tenantID, id, patch)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return saved, nil
}

func (s *FleetService) DeleteCar(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.cars.Delete(ctx, tenantID, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func (s *FleetService) ListEmployees(ctx context.Context, tenantID uuid.UUID) ([]model.Employee, error) {
	employees, err := s.employees.List(ctx, tenantID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return employees, nil
}

func (s *FleetService) GetEmployee(ctx context.Context, tenantID, id uuid.UUID) (*model.Employee, error) {
	employee, err := s.employees.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return employee, nil
}

func (s *FleetService) CreateEmployee(ctx context.Context, tenantID uuid.UUID, employee model.Employee) (*model.Employee, error) {
	if strings.TrimSpace(employee.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if employee.Status == "" {
		employee.Status = model.EmployeeAvailable
	}
	if employee.CarID != nil {
		if _, err := s.cars.GetByID(ctx, tenantID, *employee.CarID); err != nil {
			return nil, fmt.Errorf("%w: car not found", ErrNotFound)
		}
	}

	saved, err := s.employees.Create(ctx, tenantID, employee)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return saved, nil
}

func (s *FleetService) UpdateEmployee(ctx context.Context, tenantID, id uuid.UUID, patch repository.EmployeePatch) (*model.Employee, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if patch.CarID != nil && *patch.CarID != nil {
		if _, err := s.cars.GetByID(ctx, tenantID, **patch.CarID); err != nil {
			return nil, fmt.Errorf("%w: car not found", ErrNotFound)
		}
	}

	saved, err := s.employees.Update(ctx, tenantID, id, patch)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return saved, nil
}

func (s *FleetService) DeleteEmployee(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.employees.Delete(ctx, tenantID, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}
