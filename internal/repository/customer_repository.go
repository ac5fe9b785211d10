package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/wasteops-rental/internal/model"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// CustomerPatch carries the fields submitted to a partial update. Nil means
// "leave unchanged".
type CustomerPatch struct {
	Name       *string
	Type       *model.CustomerType
	Email      *string
	Phone      *string
	Address    *string
	City       *string
	PostalCode *string
}

const customerColumns = `id, tenant_id, name, type, email, phone, address, city, postal_code, created_at`

func (r *CustomerRepository) List(ctx context.Context, tenantID uuid.UUID) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+customerColumns+`
		FROM customers
		WHERE tenant_id = ?
		ORDER BY name ASC
	`, tenantID).Scan(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+customerColumns+`
		FROM customers
		WHERE tenant_id = ? AND id = ?
		LIMIT 1
	`, tenantID, id).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &customer, nil
}

func (r *CustomerRepository) Create(ctx context.Context, tenantID uuid.UUID, customer model.Customer) (*model.Customer, error) {
	var saved model.Customer
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO customers (tenant_id, name, type, email, phone, address, city, postal_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+customerColumns+`
	`,
		tenantID,
		customer.Name,
		customer.Type,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.City,
		customer.PostalCode,
	).Scan(&saved).Error
	if err != nil {
		return nil, classifyWrite(err)
	}
	return &saved, nil
}

func (r *CustomerRepository) Update(ctx context.Context, tenantID, id uuid.UUID, patch CustomerPatch) (*model.Customer, error) {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Type != nil {
		set.add("type", *patch.Type)
	}
	if patch.Email != nil {
		set.add("email", *patch.Email)
	}
	if patch.Phone != nil {
		set.add("phone", *patch.Phone)
	}
	if patch.Address != nil {
		set.add("address", *patch.Address)
	}
	if patch.City != nil {
		set.add("city", *patch.City)
	}
	if patch.PostalCode != nil {
		set.add("postal_code", *patch.PostalCode)
	}
	if set.empty() {
		return r.GetByID(ctx, tenantID, id)
	}

	args := append(set.args, tenantID, id)
	var saved model.Customer
	err := r.db.WithContext(ctx).Raw(`
		UPDATE customers
		SET `+set.sql()+`
		WHERE tenant_id = ? AND id = ?
		RETURNING `+customerColumns+`
	`, args...).Scan(&saved).Error
	if err != nil {
		return nil, classifyWrite(err)
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM customers
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
