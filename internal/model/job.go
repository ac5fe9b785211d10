package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobUnassigned JobStatus = "UNASSIGNED"
	JobAssigned   JobStatus = "ASSIGNED"
	JobCompleted  JobStatus = "COMPLETED"
	JobOverdue    JobStatus = "OVERDUE"
)

func ParseJobStatus(raw string) (JobStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(JobUnassigned):
		return JobUnassigned, true
	case string(JobAssigned):
		return JobAssigned, true
	case string(JobCompleted):
		return JobCompleted, true
	case string(JobOverdue):
		return JobOverdue, true
	default:
		return "", false
	}
}

// Terminal reports whether the status is exempt from car_id/status coupling.
// Completed and overdue jobs keep their status regardless of assignment.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobOverdue
}

// Job is a single collection/delivery task. CarID nil means unassigned; the
// assignment workflow in internal/service is the only writer of the
// (CarID, Status) pair.
type Job struct {
	ID          uuid.UUID     `json:"id"`
	TenantID    uuid.UUID     `json:"tenant_id"`
	AgreementID uuid.UUID     `json:"agreement_id"`
	ContainerID *uuid.UUID    `json:"container_id"`
	CarID       *uuid.UUID    `json:"car_id"`
	Type        WasteCategory `json:"type"`
	Status      JobStatus     `json:"status"`
	Date        time.Time     `json:"date"`
	Comment     string        `json:"comment"`
	CreatedAt   time.Time     `json:"created_at"`

	Car       *Car       `json:"car,omitempty" gorm:"-"`
	Agreement *Agreement `json:"agreement,omitempty" gorm:"-"`
}

// Assigned reports whether the job is currently attached to a car.
func (j Job) Assigned() bool {
	return j.CarID != nil && *j.CarID != uuid.Nil
}
