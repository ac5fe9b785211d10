package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CarStatus string

const (
	CarAvailable   CarStatus = "AVAILABLE"
	CarInUse       CarStatus = "IN_USE"
	CarMaintenance CarStatus = "MAINTENANCE"
)

func ParseCarStatus(raw string) (CarStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(CarAvailable):
		return CarAvailable, true
	case string(CarInUse):
		return CarInUse, true
	case string(CarMaintenance):
		return CarMaintenance, true
	default:
		return "", false
	}
}

// Car is a collection vehicle. Regnr is the human-readable plate, unique
// within a tenant.
type Car struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Regnr     string    `json:"regnr"`
	Model     string    `json:"model"`
	Status    CarStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
