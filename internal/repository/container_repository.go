package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/wasteops-rental/internal/model"
)

type ContainerRepository struct {
	db *gorm.DB
}

func NewContainerRepository(db *gorm.DB) *ContainerRepository {
	return &ContainerRepository{db: db}
}

type ContainerPatch struct {
	RFID        *string
	Name        *string
	CapacityM3  *float64
	Type        *model.WasteCategory
	Status      *model.ContainerStatus
	AvailableAt *time.Time
	JobID       **uuid.UUID
}

const containerColumns = `id, tenant_id, rfid, name, capacity_m3, type, status, available_at, job_id, created_at`

func (r *ContainerRepository) List(ctx context.Context, tenantID uuid.UUID) ([]model.Container, error) {
	var containers []model.Container
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+containerColumns+`
		FROM containers
		WHERE tenant_id = ?
		ORDER BY name ASC
	`, tenantID).Scan(&containers).Error
	if err != nil {
		return nil, err
	}
	return containers, nil
}

func (r *ContainerRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Container, error) {
	var container model.Container
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+containerColumns+`
		FROM containers
		WHERE tenant_id = ? AND id = ?
		LIMIT 1
	`, tenantID, id).Scan(&container).Error
	if err != nil {
		return nil, err
	}
	if container.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &container, nil
}

func (r *ContainerRepository) Create(ctx context.Context, tenantID uuid.UUID, container model.Container) (*model.Container, error) {
	var saved model.Container
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO containers (tenant_id, rfid, name, capacity_m3, type, status, available_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+containerColumns+`
	`,
		tenantID,
		container.RFID,
		container.Name,
		container.CapacityM3,
		container.Type,
		container.Status,
		container.AvailableAt,
	).Scan(&saved).Error
	if err != nil {
		return nil, classify(err)
	}
	return &saved, nil
}

func (r *ContainerRepository) Update(ctx context.Context, tenantID, id uuid.UUID, patch ContainerPatch) (*model.Container, error) {
	var set setClause
	if patch.RFID != nil {
		set.add("rfid", *patch.RFID)
	}
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.CapacityM3 != nil {
		set.add("capacity_m3", *patch.CapacityM3)
	}
	if patch.Type != nil {
		set.add("type", *patch.Type)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if patch.AvailableAt != nil {
		set.add("available_at", *patch.AvailableAt)
	}
	if patch.JobID != nil {
		set.add("job_id", *patch.JobID)
	}
	if set.empty() {
		return r.GetByID(ctx, tenantID, id)
	}

	args := append(set.args, tenantID, id)
	var saved model.Container
	err := r.db.WithContext(ctx).Raw(`
		UPDATE containers
		SET `+set.sql()+`
		WHERE tenant_id = ? AND id = ?
		RETURNING `+containerColumns+`
	`, args...).Scan(&saved).Error
	if err != nil {
		return nil, classify(err)
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *ContainerRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM containers
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
