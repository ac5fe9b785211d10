package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/wasteops-rental/internal/model"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// JobFilter narrows List. Zero values mean "no filter".
type JobFilter struct {
	Status model.JobStatus
	CarID  *uuid.UUID
	From   time.Time
	To     time.Time
}

type JobPatch struct {
	ContainerID **uuid.UUID
	CarID       **uuid.UUID
	Type        *model.WasteCategory
	Status      *model.JobStatus
	Date        *time.Time
	Comment     *string
}

const jobColumns = `id, tenant_id, agreement_id, container_id, car_id, type, status, date, comment, created_at`

type jobRow struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	AgreementID     uuid.UUID
	ContainerID     *uuid.UUID
	CarID           *uuid.UUID
	Type            model.WasteCategory
	Status          model.JobStatus
	Date            time.Time
	Comment         string
	CreatedAt       time.Time
	CarRegnr        *string
	CarModel        *string
	CarStatus       *model.CarStatus
	AgreementType   *model.WasteCategory
	AgreementStatus *model.AgreementStatus
	CustomerID      *uuid.UUID
	CustomerName    *string
	CustomerType    *model.CustomerType
}

func (row jobRow) toJob() model.Job {
	job := model.Job{
		ID:          row.ID,
		TenantID:    row.TenantID,
		AgreementID: row.AgreementID,
		ContainerID: row.ContainerID,
		CarID:       row.CarID,
		Type:        row.Type,
		Status:      row.Status,
		Date:        row.Date,
		Comment:     row.Comment,
		CreatedAt:   row.CreatedAt,
	}
	if row.CarID != nil && row.CarRegnr != nil {
		job.Car = &model.Car{
			ID:       *row.CarID,
			TenantID: row.TenantID,
			Regnr:    *row.CarRegnr,
		}
		if row.CarModel != nil {
			job.Car.Model = *row.CarModel
		}
		if row.CarStatus != nil {
			job.Car.Status = *row.CarStatus
		}
	}
	if row.AgreementType != nil || row.AgreementStatus != nil {
		job.Agreement = &model.Agreement{
			ID:       row.AgreementID,
			TenantID: row.TenantID,
		}
		if row.AgreementType != nil {
			job.Agreement.Type = *row.AgreementType
		}
		if row.AgreementStatus != nil {
			job.Agreement.Status = *row.AgreementStatus
		}
		if row.CustomerID != nil {
			job.Agreement.CustomerID = *row.CustomerID
			if row.CustomerName != nil {
				job.Agreement.Customer = &model.Customer{
					ID:       *row.CustomerID,
					TenantID: row.TenantID,
					Name:     *row.CustomerName,
				}
				if row.CustomerType != nil {
					job.Agreement.Customer.Type = *row.CustomerType
				}
			}
		}
	}
	return job
}

const jobListQuery = `
	SELECT
		j.id, j.tenant_id, j.agreement_id, j.container_id, j.car_id,
		j.type, j.status, j.date, j.comment, j.created_at,
		c.regnr AS car_regnr,
		c.model AS car_model,
		c.status AS car_status,
		a.type AS agreement_type,
		a.status AS agreement_status,
		a.customer_id AS customer_id,
		cu.name AS customer_name,
		cu.type AS customer_type
	FROM jobs j
	LEFT JOIN cars c ON c.id = j.car_id
	JOIN agreements a ON a.id = j.agreement_id
	JOIN customers cu ON cu.id = a.customer_id
	WHERE j.tenant_id = ?
`

// List returns the tenant's jobs with their car, agreement and the
// agreement's customer included.
func (r *JobRepository) List(ctx context.Context, tenantID uuid.UUID, filter JobFilter) ([]model.Job, error) {
	query := jobListQuery
	args := []interface{}{tenantID}

	if filter.Status != "" {
		query += " AND j.status = ?"
		args = append(args, filter.Status)
	}
	if filter.CarID != nil {
		query += " AND j.car_id = ?"
		args = append(args, *filter.CarID)
	}
	if !filter.From.IsZero() {
		query += " AND j.date >= ?"
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		query += " AND j.date < ?"
		args = append(args, filter.To)
	}
	query += " ORDER BY j.date ASC, j.created_at ASC"

	var rows []jobRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	jobs := make([]model.Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, row.toJob())
	}
	return jobs, nil
}

func (r *JobRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Job, error) {
	var row jobRow
	err := r.db.WithContext(ctx).Raw(jobListQuery+` AND j.id = ? LIMIT 1`, tenantID, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	job := row.toJob()
	return &job, nil
}

func (r *JobRepository) Create(ctx context.Context, tenantID uuid.UUID, job model.Job) (*model.Job, error) {
	var saved model.Job
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO jobs (tenant_id, agreement_id, container_id, car_id, type, status, date, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+jobColumns+`
	`,
		tenantID,
		job.AgreementID,
		job.ContainerID,
		job.CarID,
		job.Type,
		job.Status,
		job.Date,
		job.Comment,
	).Scan(&saved).Error
	if err != nil {
		return nil, classifyWrite(err)
	}
	return &saved, nil
}

func (r *JobRepository) Update(ctx context.Context, tenantID, id uuid.UUID, patch JobPatch) (*model.Job, error) {
	var set setClause
	if patch.ContainerID != nil {
		set.add("container_id", *patch.ContainerID)
	}
	if patch.CarID != nil {
		set.add("car_id", *patch.CarID)
	}
	if patch.Type != nil {
		set.add("type", *patch.Type)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if patch.Date != nil {
		set.add("date", *patch.Date)
	}
	if patch.Comment != nil {
		set.add("comment", *patch.Comment)
	}
	if set.empty() {
		return r.GetByID(ctx, tenantID, id)
	}

	args := append(set.args, tenantID, id)
	var saved model.Job
	err := r.db.WithContext(ctx).Raw(`
		UPDATE jobs
		SET `+set.sql()+`
		WHERE tenant_id = ? AND id = ?
		RETURNING `+jobColumns+`
	`, args...).Scan(&saved).Error
	if err != nil {
		return nil, classifyWrite(err)
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

// UpdateAssignment writes the (car_id, status) pair in one statement. It is
// the only mutation the assignment workflow issues.
func (r *JobRepository) UpdateAssignment(ctx context.Context, tenantID, id uuid.UUID, carID *uuid.UUID, status model.JobStatus) (*model.Job, error) {
	var saved model.Job
	err := r.db.WithContext(ctx).Raw(`
		UPDATE jobs
		SET car_id = ?, status = ?
		WHERE tenant_id = ? AND id = ?
		RETURNING `+jobColumns+`
	`, carID, status, tenantID, id).Scan(&saved).Error
	if err != nil {
		return nil, classifyWrite(err)
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *JobRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM jobs
		WHERE tenant_id = ? AND id = ?
	`, tenantID, id)
	if result.Error != nil {
		return classifyDelete(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
