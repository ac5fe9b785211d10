package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type AgreementStatus string

const (
	AgreementCreated   AgreementStatus = "CREATED"
	AgreementAssigned  AgreementStatus = "ASSIGNED"
	AgreementCompleted AgreementStatus = "COMPLETED"
	AgreementApproved  AgreementStatus = "APPROVED"
	AgreementUnknown   AgreementStatus = "UNKNOWN"
)

// ParseAgreementStatus maps legacy free-form labels onto the closed set,
// falling back to AgreementUnknown rather than admitting new states.
func ParseAgreementStatus(raw string) AgreementStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(AgreementCreated):
		return AgreementCreated
	case string(AgreementAssigned):
		return AgreementAssigned
	case string(AgreementCompleted):
		return AgreementCompleted
	case string(AgreementApproved):
		return AgreementApproved
	default:
		return AgreementUnknown
	}
}

type Repetition string

const (
	RepetitionNone   Repetition = "NONE"
	RepetitionDaily  Repetition = "DAILY"
	RepetitionWeekly Repetition = "WEEKLY"
)

func ParseRepetition(raw string) (Repetition, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RepetitionNone), "":
		return RepetitionNone, true
	case string(RepetitionDaily):
		return RepetitionDaily, true
	case string(RepetitionWeekly):
		return RepetitionWeekly, true
	default:
		return "", false
	}
}

// Agreement is a rental contract between a tenant and one of its customers.
// ValidTo is open-ended when nil.
type Agreement struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	ContainerID *uuid.UUID      `json:"container_id"`
	Type        WasteCategory   `json:"type"`
	Status      AgreementStatus `json:"status"`
	ValidFrom   time.Time       `json:"valid_from"`
	ValidTo     *time.Time      `json:"valid_to"`
	Repetition  Repetition      `json:"repetition"`
	Comment     string          `json:"comment"`
	CreatedAt   time.Time       `json:"created_at"`
	Customer    *Customer       `json:"customer,omitempty" gorm:"-"`
	Container   *Container      `json:"container,omitempty" gorm:"-"`
}
