package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/wasteops-rental/internal/model"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// EmployeePatch carries submitted fields. CarID uses the double-pointer
// convention so that "set to null" (unlink the car) and "leave unchanged"
// stay distinguishable.
type EmployeePatch struct {
	Name   *string
	Email  *string
	Phone  *string
	Status *model.EmployeeStatus
	CarID  **uuid.UUID
}

const employeeColumns = `id, tenant_id, name, email, phone, status, car_id, created_at`

func (r *EmployeeRepository) List(ctx context.Context, tenantID uuid.UUID) ([]model.Employee, error) {
	var rows []struct {
		ID        uuid.UUID
		TenantID  uuid.UUID
		Name      string
		Email     string
		Phone     string
		Status    model.EmployeeStatus
		CarID     *uuid.UUID
		CreatedAt time.Time
		CarRegnr  *string
		CarModel  *string
		CarStatus *model.CarStatus
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			e.id, e.tenant_id, e.name, e.email, e.phone, e.status, e.car_id, e.created_at,
			c.regnr AS car_regnr,
			c.model AS car_model,
			c.status AS car_status
		FROM employees e
		LEFT JOIN cars c ON c.id = e.car_id
		WHERE e.tenant_id = ?
		ORDER BY e.name ASC
	`, tenantID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	employees := make([]model.Employee, 0, len(rows))
	for _, row := range rows {
		employee := model.Employee{
			ID:        row.ID,
			TenantID:  row.TenantID,
			Name:      row.Name,
			Email:     row.Email,
			Phone:     row.Phone,
			Status:    row.Status,
			CarID:     row.CarID,
			CreatedAt: row.CreatedAt,
		}
		if row.CarID != nil && row.CarRegnr != nil {
			employee.Car = &model.Car{
				ID:       *row.CarID,
				TenantID: row.TenantID,
				Regnr:    *row.CarRegnr,
			}
			if row.CarModel != nil {
				employee.Car.Model = *row.CarModel
			}
			if row.CarStatus != nil {
				employee.Car.Status = *row.CarStatus
			}
		}
		employees = append(employees, employee)
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+employeeColumns+`
		FROM employees
		WHERE tenant_id = ? AND id = ?
		LIMIT 1
	`, tenantID, id).Scan(&employee).Error
	if err != nil {
		return nil, err
	}
	if employee.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &employee, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, tenantID uuid.UUID, employee model.Employee) (*model.Employee, error) {
	var saved model.Employee
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO employees (tenant_id, name, email, phone, status, car_id)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+employeeColumns+`
	`,
		tenantID,
		employee.Name,
		employee.Email,
		employee.Phone,
		employee.Status,
		employee.CarID,
	).Scan(&saved).Error
	if err != nil {
		return nil, classifyWrite(err)
	}
	return &saved, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, tenantID, id uuid.UUID, patch EmployeePatch) (*model.Employee, error) {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Email != nil {
		set.add("email", *patch.Email)
	}
	if patch.Phone != nil {
		set.add("phone", *patch.Phone)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if patch.CarID != nil {
		set.add("car_id", *patch.CarID)
	}
	if set.empty() {
		return r.GetByID(ctx, tenantID, id)
	}

	args := append(set.args, tenantID, id)
	var saved model.Employee
	err := r.db.WithContext(ctx).Raw(`
		UPDATE employees
		SET `+set.sql()+`
		WHERE tenant_id = ? AND id = ?
		RETURNING `+employeeColumns+`
	`, args...).Scan(&saved).Error
	if err != nil {
		return nil, classifyWrite(err)
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM employees
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
