package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
)

type ContainerStore interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]model.Container, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Container, error)
	Create(ctx context.Context, tenantID uuid.UUID, container model.Container) (*model.Container, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch repository.ContainerPatch) (*model.Container, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type ContainerService struct {
	containers ContainerStore
}

func NewContainerService(containers ContainerStore) *ContainerService {
	return &ContainerService{containers: containers}
}

func (s *ContainerService) List(ctx context.Context, tenantID uuid.UUID) ([]model.Container, error) {
	containers, err := s.containers.List(ctx, tenantID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return containers, nil
}

func (s *ContainerService) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Container, error) {
	container, err := s.containers.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return container, nil
}

func (s *ContainerService) Create(ctx context.Context, tenantID uuid.UUID, container model.Container) (*model.Container, error) {
	if strings.TrimSpace(container.RFID) == "" {
		return nil, fmt.Errorf("%w: rfid is required", ErrInvalidInput)
	}
	if container.CapacityM3 < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}
	if container.Status == "" {
		container.Status = model.ContainerAvailable
	}
	if container.Type == "" {
		container.Type = model.WasteUnknown
	}

	saved, err := s.containers.Create(ctx, tenantID, container)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return saved, nil
}

func (s *ContainerService) Update(ctx context.Context, tenantID, id uuid.UUID, patch repository.ContainerPatch) (*model.Container, error) {
	if patch.RFID != nil && strings.TrimSpace(*patch.RFID) == "" {
		return nil, fmt.Errorf("%w: rfid must not be empty", ErrInvalidInput)
	}
	if patch.CapacityM3 != nil && *patch.CapacityM3 < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}

	saved, err := s.containers.Update(ctx, tenantID, id, patch)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return saved, nil
}

func (s *ContainerService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.containers.Delete(ctx, tenantID, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}
