package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
)

type CustomerStore interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]model.Customer, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Customer, error)
	Create(ctx context.Context, tenantID uuid.UUID, customer model.Customer) (*model.Customer, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch repository.CustomerPatch) (*model.Customer, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type CustomerService struct {
	customers CustomerStore
}

func NewCustomerService(customers CustomerStore) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID) ([]model.Customer, error) {
	customers, err := s.customers.List(ctx, tenantID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customers.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return customer, nil
}

func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, customer model.Customer) (*model.Customer, error) {
	if strings.TrimSpace(customer.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if customer.Type != model.CustomerPrivate && customer.Type != model.CustomerBusiness {
		return nil, fmt.Errorf("%w: invalid customer type", ErrInvalidInput)
	}

	saved, err := s.customers.Create(ctx, tenantID, customer)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return saved, nil
}

func (s *CustomerService) Update(ctx context.Context, tenantID, id uuid.UUID, patch repository.CustomerPatch) (*model.Customer, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}

	saved, err := s.customers.Update(ctx, tenantID, id, patch)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return saved, nil
}

func (s *CustomerService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.customers.Delete(ctx, tenantID, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}
