package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrReferenced marks a delete blocked by dependent rows.
	ErrReferenced = errors.New("record is referenced by dependent rows")
	// ErrDuplicate marks a unique constraint violation.
	ErrDuplicate = errors.New("record violates a unique constraint")
	// ErrInvalidReference marks an insert or update pointing at a row that
	// does not exist in the caller's tenant.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// classify translates Postgres constraint violations into repository
// sentinels so the service layer never inspects driver errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.ForeignKeyViolation:
		// On DELETE a FK violation means dependents exist; on INSERT/UPDATE
		// it means the referenced row is missing. Callers pick the sentinel
		// via classifyWrite/classifyDelete.
		return ErrReferenced
	case pgerrcode.UniqueViolation:
		return ErrDuplicate
	default:
		return err
	}
}

func classifyWrite(err error) error {
	classified := classify(err)
	if errors.Is(classified, ErrReferenced) {
		return ErrInvalidReference
	}
	return classified
}

func classifyDelete(err error) error {
	return classify(err)
}
