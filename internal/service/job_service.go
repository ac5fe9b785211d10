package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
)

// JobStore is the tenant-scoped job persistence the workflow runs against.
type JobStore interface {
	List(ctx context.Context, tenantID uuid.UUID, filter repository.JobFilter) ([]model.Job, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Job, error)
	Create(ctx context.Context, tenantID uuid.UUID, job model.Job) (*model.Job, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch repository.JobPatch) (*model.Job, error)
	UpdateAssignment(ctx context.Context, tenantID, id uuid.UUID, carID *uuid.UUID, status model.JobStatus) (*model.Job, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// CarStore is the subset of the car repository the workflow needs to verify
// that an assignment target exists in the caller's tenant.
type CarStore interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Car, error)
}

// ScheduleExporter renders a dispatch schedule as a spreadsheet.
type ScheduleExporter interface {
	Generate(schedule model.Schedule) ([]byte, error)
}

// JobService is the single authority over a job's (car_id, status) pair.
// Handlers and the dispatch board both commit assignment changes through it.
type JobService struct {
	jobs  JobStore
	cars  CarStore
	excel ScheduleExporter
}

func NewJobService(jobs JobStore, cars CarStore, excel ScheduleExporter) *JobService {
	return &JobService{jobs: jobs, cars: cars, excel: excel}
}

func (s *JobService) List(ctx context.Context, tenantID uuid.UUID, filter repository.JobFilter) ([]model.Job, error) {
	jobs, err := s.jobs.List(ctx, tenantID, filter)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, tenantID, id uuid.UUID) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return job, nil
}

type CreateJobInput struct {
	AgreementID uuid.UUID
	ContainerID *uuid.UUID
	CarID       *uuid.UUID
	Type        model.WasteCategory
	Date        time.Time
	Comment     string
}

func (s *JobService) Create(ctx context.Context, tenantID uuid.UUID, input CreateJobInput) (*model.Job, error) {
	if input.AgreementID == uuid.Nil {
		return nil, fmt.Errorf("%w: agreement_id is required", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	status := model.JobUnassigned
	carID := normalizeCarID(input.CarID)
	if carID != nil {
		if _, err := s.cars.GetByID(ctx, tenantID, *carID); err != nil {
			return nil, fmt.Errorf("%w: car not found", ErrInvalidInput)
		}
		status = model.JobAssigned
	}

	job, err := s.jobs.Create(ctx, tenantID, model.Job{
		AgreementID: input.AgreementID,
		ContainerID: input.ContainerID,
		CarID:       carID,
		Type:        input.Type,
		Status:      status,
		Date:        input.Date,
		Comment:     input.Comment,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return job, nil
}

// Assign attaches the job to the given car and marks it assigned. Overdue
// jobs keep their status; completed jobs reject the change.
func (s *JobService) Assign(ctx context.Context, tenantID, jobID, carID uuid.UUID) (*model.Job, error) {
	if carID == uuid.Nil {
		return nil, fmt.Errorf("%w: car_id is required", ErrInvalidInput)
	}

	job, err := s.jobs.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if job.Status == model.JobCompleted {
		return nil, ErrJobCompleted
	}
	if _, err := s.cars.GetByID(ctx, tenantID, carID); err != nil {
		return nil, fmt.Errorf("%w: car not found", ErrInvalidInput)
	}

	status := model.JobAssigned
	if job.Status == model.JobOverdue {
		status = model.JobOverdue
	}

	updated, err := s.jobs.UpdateAssignment(ctx, tenantID, jobID, &carID, status)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return updated, nil
}

// Unassign detaches the job from its car. Calling it on an already
// unassigned job is a no-op with the same terminal state.
func (s *JobService) Unassign(ctx context.Context, tenantID, jobID uuid.UUID) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if job.Status == model.JobCompleted {
		return nil, ErrJobCompleted
	}

	status := model.JobUnassigned
	if job.Status == model.JobOverdue {
		status = model.JobOverdue
	}

	updated, err := s.jobs.UpdateAssignment(ctx, tenantID, jobID, nil, status)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return updated, nil
}

// EditJobInput is the manual edit form payload. CarID distinguishes
// "absent" (nil) from "set to null" (pointer to nil); a null car means
// unassignment.
type EditJobInput struct {
	ContainerID **uuid.UUID
	CarID       **uuid.UUID
	Type        *model.WasteCategory
	Status      *model.JobStatus
	Date        *time.Time
	Comment     *string
}

// EditDetails applies a partial update. When car_id is part of the payload
// and status is not, status is derived the same way Assign/Unassign derive
// it; an explicitly supplied status always wins.
func (s *JobService) EditDetails(ctx context.Context, tenantID, jobID uuid.UUID, input EditJobInput) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	patch := repository.JobPatch{
		ContainerID: input.ContainerID,
		Type:        input.Type,
		Status:      input.Status,
		Date:        input.Date,
		Comment:     input.Comment,
	}

	if input.CarID != nil {
		carID := normalizeCarID(*input.CarID)
		if carID != nil {
			if _, err := s.cars.GetByID(ctx, tenantID, *carID); err != nil {
				return nil, fmt.Errorf("%w: car not found", ErrInvalidInput)
			}
		}
		patch.CarID = &carID

		if input.Status == nil {
			if job.Status == model.JobCompleted {
				return nil, ErrJobCompleted
			}
			derived := model.JobUnassigned
			if carID != nil {
				derived = model.JobAssigned
			}
			if job.Status == model.JobOverdue {
				derived = model.JobOverdue
			}
			patch.Status = &derived
		}
	}

	updated, err := s.jobs.Update(ctx, tenantID, jobID, patch)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return updated, nil
}

func (s *JobService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.jobs.Delete(ctx, tenantID, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

type ExportScheduleInput struct {
	From time.Time
	To   time.Time
	Cars []model.Car
}

type ExportScheduleResult struct {
	FileName string
	Content  []byte
}

// ExportSchedule renders the tenant's jobs for a period as an .xlsx
// workbook, grouped the same way the dispatch board groups them.
func (s *JobService) ExportSchedule(ctx context.Context, tenantID uuid.UUID, input ExportScheduleInput) (*ExportScheduleResult, error) {
	if input.From.IsZero() || input.To.IsZero() {
		return nil, fmt.Errorf("%w: period dates are required", ErrInvalidInput)
	}
	if input.From.After(input.To) {
		return nil, fmt.Errorf("%w: from must be before or equal to to", ErrInvalidInput)
	}

	jobs, err := s.jobs.List(ctx, tenantID, repository.JobFilter{
		From: input.From,
		To:   input.To.Add(24 * time.Hour),
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	schedule := model.BuildSchedule(input.Cars, jobs, input.From, input.To)
	content, err := s.excel.Generate(schedule)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("dispatch-%s-%s.xlsx",
		input.From.Format("20060102"), input.To.Format("20060102"))
	return &ExportScheduleResult{FileName: fileName, Content: content}, nil
}

// normalizeCarID collapses the uuid.Nil sentinel into nil so that a zero id
// coming from a form counts as unassignment.
func normalizeCarID(carID *uuid.UUID) *uuid.UUID {
	if carID == nil || *carID == uuid.Nil {
		return nil
	}
	return carID
}
