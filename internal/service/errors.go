package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nurpe/wasteops-rental/internal/repository"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	// ErrJobCompleted rejects assignment changes on completed jobs. Completed
	// is terminal; a drag on the board must not resurrect the job.
	ErrJobCompleted = errors.New("job is completed")
)

// mapStoreError translates repository and gorm sentinels into service errors.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrReferenced):
		return ErrConflict
	case errors.Is(err, repository.ErrDuplicate):
		return ErrConflict
	case errors.Is(err, repository.ErrInvalidReference):
		return ErrInvalidInput
	default:
		return err
	}
}
