package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/wasteops-rental/internal/model"
)

type CarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

type CarPatch struct {
	Regnr  *string
	Model  *string
	Status *model.CarStatus
}

const carColumns = `id, tenant_id, regnr, model, status, created_at`

func (r *CarRepository) List(ctx context.Context, tenantID uuid.UUID) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+carColumns+`
		FROM cars
		WHERE tenant_id = ?
		ORDER BY regnr ASC
	`, tenantID).Scan(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// ListAvailable returns the tenant's cars with no employee linked to them,
// used when building driver-to-vehicle relations.
func (r *CarRepository) ListAvailable(ctx context.Context, tenantID uuid.UUID) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+prefixColumns("c", carColumns)+`
		FROM cars c
		WHERE c.tenant_id = ?
			AND NOT EXISTS (
				SELECT 1 FROM employees e WHERE e.car_id = c.id
			)
		ORDER BY c.regnr ASC
	`, tenantID).Scan(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *CarRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Car, error) {
	var car model.Car
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+carColumns+`
		FROM cars
		WHERE tenant_id = ? AND id = ?
		LIMIT 1
	`, tenantID, id).Scan(&car).Error
	if err != nil {
		return nil, err
	}
	if car.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &car, nil
}

func (r *CarRepository) Create(ctx context.Context, tenantID uuid.UUID, car model.Car) (*model.Car, error) {
	var saved model.Car
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO cars (tenant_id, regnr, model, status)
		VALUES (?, ?, ?, ?)
		RETURNING `+carColumns+`
	`, tenantID, car.Regnr, car.Model, car.Status).Scan(&saved).Error
	if err != nil {
		return nil, classify(err)
	}
	return &saved, nil
}

func (r *CarRepository) Update(ctx context.Context, tenantID, id uuid.UUID, patch CarPatch) (*model.Car, error) {
	var set setClause
	if patch.Regnr != nil {
		set.add("regnr", *patch.Regnr)
	}
	if patch.Model != nil {
		set.add("model", *patch.Model)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if set.empty() {
		return r.GetByID(ctx, tenantID, id)
	}

	args := append(set.args, tenantID, id)
	var saved model.Car
	err := r.db.WithContext(ctx).Raw(`
		UPDATE cars
		SET `+set.sql()+`
		WHERE tenant_id = ? AND id = ?
		RETURNING `+carColumns+`
	`, args...).Scan(&saved).Error
	if err != nil {
		return nil, classify(err)
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *CarRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM cars
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
