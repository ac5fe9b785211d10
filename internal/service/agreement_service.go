package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
)

type AgreementStore interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]model.Agreement, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Agreement, error)
	Create(ctx context.Context, tenantID uuid.UUID, agreement model.Agreement) (*model.Agreement, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch repository.AgreementPatch) (*model.Agreement, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// DocumentGenerator renders a rental agreement form as a PDF.
type DocumentGenerator interface {
	Generate(doc model.AgreementDocument) ([]byte, error)
}

type AgreementService struct {
	agreements AgreementStore
	customers  CustomerStore
	containers ContainerStore
	pdf        DocumentGenerator
}

func NewAgreementService(agreements AgreementStore, customers CustomerStore, containers ContainerStore, pdf DocumentGenerator) *AgreementService {
	return &AgreementService{
		agreements: agreements,
		customers:  customers,
		containers: containers,
		pdf:        pdf,
	}
}

func (s *AgreementService) List(ctx context.Context, tenantID uuid.UUID) ([]model.Agreement, error) {
	agreements, err := s.agreements.List(ctx, tenantID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return agreements, nil
}

func (s *AgreementService) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Agreement, error) {
	agreement, err := s.agreements.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return agreement, nil
}

func (s *AgreementService) Create(ctx context.Context, tenantID uuid.UUID, agreement model.Agreement) (*model.Agreement, error) {
	if agreement.CustomerID == uuid.Nil {
		return nil, fmt.Errorf("%w: customer_id is required", ErrInvalidInput)
	}
	if agreement.ValidFrom.IsZero() {
		return nil, fmt.Errorf("%w: valid_from is required", ErrInvalidInput)
	}
	if err := checkValidity(agreement.ValidFrom, agreement.ValidTo); err != nil {
		return nil, err
	}
	if agreement.Status == "" {
		agreement.Status = model.AgreementCreated
	}
	if agreement.Repetition == "" {
		agreement.Repetition = model.RepetitionNone
	}
	if agreement.Type == "" {
		agreement.Type = model.WasteUnknown
	}

	saved, err := s.agreements.Create(ctx, tenantID, agreement)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return saved, nil
}

func (s *AgreementService) Update(ctx context.Context, tenantID, id uuid.UUID, patch repository.AgreementPatch) (*model.Agreement, error) {
	if patch.ValidFrom != nil || patch.ValidTo != nil {
		current, err := s.agreements.GetByID(ctx, tenantID, id)
		if err != nil {
			return nil, mapStoreError(err)
		}
		validFrom := current.ValidFrom
		if patch.ValidFrom != nil {
			validFrom = *patch.ValidFrom
		}
		validTo := current.ValidTo
		if patch.ValidTo != nil {
			validTo = *patch.ValidTo
		}
		if err := checkValidity(validFrom, validTo); err != nil {
			return nil, err
		}
	}

	saved, err := s.agreements.Update(ctx, tenantID, id, patch)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return saved, nil
}

func (s *AgreementService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.agreements.Delete(ctx, tenantID, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

type DocumentResult struct {
	FileName string
	Content  []byte
}

// Document renders the agreement as a PDF form.
func (s *AgreementService) Document(ctx context.Context, tenantID, id uuid.UUID) (*DocumentResult, error) {
	agreement, err := s.agreements.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	customer, err := s.customers.GetByID(ctx, tenantID, agreement.CustomerID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	doc := model.AgreementDocument{
		Agreement: *agreement,
		Customer:  *customer,
	}
	if agreement.ContainerID != nil {
		container, err := s.containers.GetByID(ctx, tenantID, *agreement.ContainerID)
		if err != nil {
			return nil, mapStoreError(err)
		}
		doc.Container = container
	}

	content, err := s.pdf.Generate(doc)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("agreement-%s.pdf", shortID(agreement.ID))
	return &DocumentResult{FileName: fileName, Content: content}, nil
}

func checkValidity(validFrom time.Time, validTo *time.Time) error {
	if validTo != nil && validTo.Before(validFrom) {
		return fmt.Errorf("%w: valid_to must not precede valid_from", ErrInvalidInput)
	}
	return nil
}

func shortID(id uuid.UUID) string {
	return strings.Split(id.String(), "-")[0]
}
