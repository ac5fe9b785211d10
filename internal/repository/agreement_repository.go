package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/wasteops-rental/internal/model"
)

type AgreementRepository struct {
	db *gorm.DB
}

func NewAgreementRepository(db *gorm.DB) *AgreementRepository {
	return &AgreementRepository{db: db}
}

type AgreementPatch struct {
	ContainerID **uuid.UUID
	Type        *model.WasteCategory
	Status      *model.AgreementStatus
	ValidFrom   *time.Time
	ValidTo     **time.Time
	Repetition  *model.Repetition
	Comment     *string
}

const agreementColumns = `id, tenant_id, customer_id, container_id, type, status, valid_from, valid_to, repetition, comment, created_at`

type agreementRow struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	CustomerID   uuid.UUID
	ContainerID  *uuid.UUID
	Type         model.WasteCategory
	Status       model.AgreementStatus
	ValidFrom    time.Time
	ValidTo      *time.Time
	Repetition   model.Repetition
	Comment      string
	CreatedAt    time.Time
	CustomerName *string
	CustomerType *model.CustomerType
}

func (row agreementRow) toAgreement() model.Agreement {
	agreement := model.Agreement{
		ID:          row.ID,
		TenantID:    row.TenantID,
		CustomerID:  row.CustomerID,
		ContainerID: row.ContainerID,
		Type:        row.Type,
		Status:      row.Status,
		ValidFrom:   row.ValidFrom,
		ValidTo:     row.ValidTo,
		Repetition:  row.Repetition,
		Comment:     row.Comment,
		CreatedAt:   row.CreatedAt,
	}
	if row.CustomerName != nil {
		agreement.Customer = &model.Customer{
			ID:       row.CustomerID,
			TenantID: row.TenantID,
			Name:     *row.CustomerName,
		}
		if row.CustomerType != nil {
			agreement.Customer.Type = *row.CustomerType
		}
	}
	return agreement
}

func (r *AgreementRepository) List(ctx context.Context, tenantID uuid.UUID) ([]model.Agreement, error) {
	var rows []agreementRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			`+prefixColumns("a", agreementColumns)+`,
			cu.name AS customer_name,
			cu.type AS customer_type
		FROM agreements a
		JOIN customers cu ON cu.id = a.customer_id
		WHERE a.tenant_id = ?
		ORDER BY a.valid_from DESC, a.created_at DESC
	`, tenantID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	agreements := make([]model.Agreement, 0, len(rows))
	for _, row := range rows {
		agreements = append(agreements, row.toAgreement())
	}
	return agreements, nil
}

func (r *AgreementRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Agreement, error) {
	var row agreementRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			`+prefixColumns("a", agreementColumns)+`,
			cu.name AS customer_name,
			cu.type AS customer_type
		FROM agreements a
		JOIN customers cu ON cu.id = a.customer_id
		WHERE a.tenant_id = ? AND a.id = ?
		LIMIT 1
	`, tenantID, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	agreement := row.toAgreement()
	return &agreement, nil
}

func (r *AgreementRepository) Create(ctx context.Context, tenantID uuid.UUID, agreement model.Agreement) (*model.Agreement, error) {
	var saved model.Agreement
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO agreements (tenant_id, customer_id, container_id, type, status, valid_from, valid_to, repetition, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+agreementColumns+`
	`,
		tenantID,
		agreement.CustomerID,
		agreement.ContainerID,
		agreement.Type,
		agreement.Status,
		agreement.ValidFrom,
		agreement.ValidTo,
		agreement.Repetition,
		agreement.Comment,
	).Scan(&saved).Error
	if err != nil {
		return nil, classifyWrite(err)
	}
	return &saved, nil
}

func (r *AgreementRepository) Update(ctx context.Context, tenantID, id uuid.UUID, patch AgreementPatch) (*model.Agreement, error) {
	var set setClause
	if patch.ContainerID != nil {
		set.add("container_id", *patch.ContainerID)
	}
	if patch.Type != nil {
		set.add("type", *patch.Type)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if patch.ValidFrom != nil {
		set.add("valid_from", *patch.ValidFrom)
	}
	if patch.ValidTo != nil {
		set.add("valid_to", *patch.ValidTo)
	}
	if patch.Repetition != nil {
		set.add("repetition", *patch.Repetition)
	}
	if patch.Comment != nil {
		set.add("comment", *patch.Comment)
	}
	if set.empty() {
		return r.GetByID(ctx, tenantID, id)
	}

	args := append(set.args, tenantID, id)
	var saved model.Agreement
	err := r.db.WithContext(ctx).Raw(`
		UPDATE agreements
		SET `+set.sql()+`
		WHERE tenant_id = ? AND id = ?
		RETURNING `+agreementColumns+`
	`, args...).Scan(&saved).Error
	if err != nil {
		return nil, classifyWrite(err)
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *AgreementRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM agreements
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
