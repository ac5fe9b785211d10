package dispatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
)

// JobCommitter is the assignment workflow the board commits drops through.
type JobCommitter interface {
	List(ctx context.Context, tenantID uuid.UUID, filter repository.JobFilter) ([]model.Job, error)
	Assign(ctx context.Context, tenantID, jobID, carID uuid.UUID) (*model.Job, error)
	Unassign(ctx context.Context, tenantID, jobID uuid.UUID) (*model.Job, error)
}

// CarLister supplies the tenant's cars for column construction.
type CarLister interface {
	ListCars(ctx context.Context, tenantID uuid.UUID) ([]model.Car, error)
}

// Controller owns one tenant's board projection and reconciles drag
// interactions into workflow calls. Provisional drag state lives only here;
// the store sees a single assign/unassign per finalized drop.
type Controller struct {
	tenantID uuid.UUID
	jobs     JobCommitter
	cars     CarLister
	log      zerolog.Logger

	board    *Board
	snapshot []model.Job
}

func NewController(tenantID uuid.UUID, jobs JobCommitter, cars CarLister, log zerolog.Logger) *Controller {
	return &Controller{
		tenantID: tenantID,
		jobs:     jobs,
		cars:     cars,
		log:      log,
	}
}

// Load (re)builds the projection from the store.
func (c *Controller) Load(ctx context.Context) (*Board, error) {
	cars, err := c.cars.ListCars(ctx, c.tenantID)
	if err != nil {
		return nil, err
	}
	jobs, err := c.jobs.List(ctx, c.tenantID, repository.JobFilter{})
	if err != nil {
		return nil, err
	}
	c.board = NewBoard(cars, jobs)
	c.snapshot = nil
	return c.board, nil
}

// Board returns the current projection, loading it first if needed.
func (c *Controller) Board(ctx context.Context) (*Board, error) {
	if c.board == nil {
		return c.Load(ctx)
	}
	return c.board, nil
}

// DragOverCard applies a provisional move of the dragged card onto another
// card. The first move of a drag captures the rollback snapshot.
func (c *Controller) DragOverCard(dragID, overID uuid.UUID) bool {
	if c.board == nil {
		return false
	}
	c.captureSnapshot()
	return c.board.MoveOverCard(dragID, overID)
}

// DragOverColumn applies a provisional move onto empty column space.
func (c *Controller) DragOverColumn(dragID, columnID uuid.UUID) bool {
	if c.board == nil {
		return false
	}
	c.captureSnapshot()
	return c.board.MoveOverColumn(dragID, columnID)
}

// DragColumn reorders columns. Client-side only.
func (c *Controller) DragColumn(dragID, overID uuid.UUID) bool {
	if c.board == nil {
		return false
	}
	return c.board.MoveColumn(dragID, overID)
}

// EndDrag finalizes a drop: one commit call against the workflow, then an
// unconditional refetch. On commit failure the provisional state is rolled
// back to the snapshot before resynchronizing, so the projection never
// shows an assignment the store refused.
func (c *Controller) EndDrag(ctx context.Context, jobID uuid.UUID) error {
	if c.board == nil {
		return fmt.Errorf("board not loaded")
	}

	target, ok := c.board.CardColumn(jobID)
	var commitErr error
	if !ok {
		commitErr = fmt.Errorf("unknown card %s", jobID)
	} else if target == uuid.Nil {
		_, commitErr = c.jobs.Unassign(ctx, c.tenantID, jobID)
	} else {
		_, commitErr = c.jobs.Assign(ctx, c.tenantID, jobID, target)
	}

	if commitErr != nil {
		c.log.Error().Err(commitErr).
			Str("job_id", jobID.String()).
			Str("target", target.String()).
			Msg("dispatch commit failed")
		if c.snapshot != nil {
			c.board.Restore(c.snapshot)
		}
	}

	if jobs, err := c.jobs.List(ctx, c.tenantID, repository.JobFilter{}); err != nil {
		c.log.Error().Err(err).Msg("dispatch refetch failed")
	} else {
		c.board.ReplaceCards(jobs)
	}

	c.snapshot = nil
	return commitErr
}

func (c *Controller) captureSnapshot() {
	if c.snapshot == nil {
		c.snapshot = c.board.Snapshot()
	}
}
