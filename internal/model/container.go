package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContainerStatus string

const (
	ContainerAvailable   ContainerStatus = "AVAILABLE"
	ContainerUnavailable ContainerStatus = "UNAVAILABLE"
)

func ParseContainerStatus(raw string) (ContainerStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(ContainerAvailable):
		return ContainerAvailable, true
	case string(ContainerUnavailable):
		return ContainerUnavailable, true
	default:
		return "", false
	}
}

// Container is a rentable waste container. AvailableAt is the date from which
// it may be deployed; JobID points at the job currently using it, if any.
type Container struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	RFID        string          `json:"rfid"`
	Name        string          `json:"name"`
	CapacityM3  float64         `json:"capacity_m3"`
	Type        WasteCategory   `json:"type"`
	Status      ContainerStatus `json:"status"`
	AvailableAt time.Time       `json:"available_at"`
	JobID       *uuid.UUID      `json:"job_id"`
	CreatedAt   time.Time       `json:"created_at"`
}
