package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/wasteops-rental/internal/dispatch"
	"github.com/nurpe/wasteops-rental/internal/model"
)

type dispatchMoveRequest struct {
	JobID string       `json:"job_id" binding:"required"`
	CarID optionalUUID `json:"car_id"`
}

type boardColumnResponse struct {
	ID    uuid.UUID   `json:"id"`
	Label string      `json:"label"`
	Cards []model.Job `json:"cards"`
}

func (h *Handler) dispatchBoard(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	controller := dispatch.NewController(tenant, h.jobs, h.fleet, h.log)
	board, err := controller.Load(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, boardResponse(board))
}

// dispatchMove finalizes a drag: the dragged job lands in the target column
// (null or uuid.Nil car means the unassigned lane) and the refreshed board
// is returned. On commit failure the stale provisional state is rolled back
// before the error is reported.
func (h *Handler) dispatchMove(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dispatchMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job_id"})
		return
	}

	target := uuid.Nil
	if req.CarID.Set && req.CarID.Value != nil {
		target = *req.CarID.Value
	}

	controller := dispatch.NewController(tenant, h.jobs, h.fleet, h.log)
	board, err := controller.Load(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !controller.DragOverColumn(jobID, target) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job or column"})
		return
	}
	if err := controller.EndDrag(c.Request.Context(), jobID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, boardResponse(board))
}

func boardResponse(board *dispatch.Board) []boardColumnResponse {
	columns := make([]boardColumnResponse, 0, len(board.Columns))
	for _, column := range board.Columns {
		cards := board.ColumnCards(column.ID)
		if cards == nil {
			cards = []model.Job{}
		}
		columns = append(columns, boardColumnResponse{
			ID:    column.ID,
			Label: column.Label,
			Cards: cards,
		})
	}
	return columns
}
