package model

import "github.com/google/uuid"

// Principal is the identity carried by an access token.
type Principal struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Email    string
}
