package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type EmployeeStatus string

const (
	EmployeeAvailable   EmployeeStatus = "AVAILABLE"
	EmployeeUnavailable EmployeeStatus = "UNAVAILABLE"
	EmployeeOnLeave     EmployeeStatus = "ON_LEAVE"
	EmployeeSuspended   EmployeeStatus = "SUSPENDED"
	EmployeeSickLeave   EmployeeStatus = "SICK_LEAVE"
)

func ParseEmployeeStatus(raw string) (EmployeeStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(EmployeeAvailable):
		return EmployeeAvailable, true
	case string(EmployeeUnavailable):
		return EmployeeUnavailable, true
	case string(EmployeeOnLeave):
		return EmployeeOnLeave, true
	case string(EmployeeSuspended):
		return EmployeeSuspended, true
	case string(EmployeeSickLeave):
		return EmployeeSickLeave, true
	default:
		return "", false
	}
}

// Employee is a driver. CarID links the driver to at most one car; the same
// car may be linked by at most one employee.
type Employee struct {
	ID        uuid.UUID      `json:"id"`
	TenantID  uuid.UUID      `json:"tenant_id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Status    EmployeeStatus `json:"status"`
	CarID     *uuid.UUID     `json:"car_id"`
	Car       *Car           `json:"car,omitempty" gorm:"-"`
	CreatedAt time.Time      `json:"created_at"`
}
