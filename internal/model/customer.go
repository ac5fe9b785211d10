package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CustomerType string

const (
	CustomerPrivate  CustomerType = "PRIVATE"
	CustomerBusiness CustomerType = "BUSINESS"
)

func ParseCustomerType(raw string) (CustomerType, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(CustomerPrivate):
		return CustomerPrivate, true
	case string(CustomerBusiness):
		return CustomerBusiness, true
	default:
		return "", false
	}
}

type Customer struct {
	ID         uuid.UUID    `json:"id"`
	TenantID   uuid.UUID    `json:"tenant_id"`
	Name       string       `json:"name"`
	Type       CustomerType `json:"type"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Address    string       `json:"address"`
	City       string       `json:"city"`
	PostalCode string       `json:"postal_code"`
	CreatedAt  time.Time    `json:"created_at"`
}
