package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/nurpe/wasteops-rental/internal/repository"
)

func TestMapStoreError(t *testing.T) {
	assert.NoError(t, mapStoreError(nil))
	assert.ErrorIs(t, mapStoreError(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, mapStoreError(repository.ErrReferenced), ErrConflict)
	assert.ErrorIs(t, mapStoreError(repository.ErrDuplicate), ErrConflict)
	assert.ErrorIs(t, mapStoreError(repository.ErrInvalidReference), ErrInvalidInput)

	wrapped := fmt.Errorf("delete car: %w", repository.ErrReferenced)
	assert.ErrorIs(t, mapStoreError(wrapped), ErrConflict)

	unknown := errors.New("connection reset")
	assert.Equal(t, unknown, mapStoreError(unknown))
}
