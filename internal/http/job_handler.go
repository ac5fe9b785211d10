package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
	"github.com/nurpe/wasteops-rental/internal/service"
)

type createJobRequest struct {
	AgreementID string `json:"agreement_id" binding:"required"`
	ContainerID string `json:"container_id"`
	CarID       string `json:"car_id"`
	Type        string `json:"type"`
	Date        string `json:"date" binding:"required"`
	Comment     string `json:"comment"`
}

type updateJobRequest struct {
	ContainerID optionalUUID `json:"container_id"`
	CarID       optionalUUID `json:"car_id"`
	Type        *string      `json:"type"`
	Status      *string      `json:"status"`
	Date        *string      `json:"date"`
	Comment     *string      `json:"comment"`
}

type assignJobRequest struct {
	CarID string `json:"car_id" binding:"required"`
}

type exportScheduleRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

func (h *Handler) listJobs(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	var filter repository.JobFilter
	if raw := c.Query("status"); raw != "" {
		status, valid := model.ParseJobStatus(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter.Status = status
	}
	if raw := c.Query("car_id"); raw != "" {
		carID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car_id"})
			return
		}
		filter.CarID = &carID
	}
	if raw := c.Query("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
			return
		}
		filter.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
			return
		}
		filter.To = to
	}

	jobs, err := h.jobs.List(c.Request.Context(), tenant, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *Handler) getJob(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	job, err := h.jobs.Get(c.Request.Context(), tenant, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) createJob(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agreementID, err := uuid.Parse(req.AgreementID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agreement_id"})
		return
	}
	containerID, err := parseOptionalUUID(req.ContainerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid container_id"})
		return
	}
	carID, err := parseOptionalUUID(req.CarID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car_id"})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), tenant, service.CreateJobInput{
		AgreementID: agreementID,
		ContainerID: containerID,
		CarID:       carID,
		Type:        parseWasteCategory(req.Type),
		Date:        date,
		Comment:     req.Comment,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *Handler) updateJob(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.EditJobInput{Comment: req.Comment}
	if req.ContainerID.Set {
		input.ContainerID = &req.ContainerID.Value
	}
	if req.CarID.Set {
		input.CarID = &req.CarID.Value
	}
	if req.Type != nil {
		category := parseWasteCategory(*req.Type)
		input.Type = &category
	}
	if req.Status != nil {
		status, valid := model.ParseJobStatus(*req.Status)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		input.Status = &status
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		input.Date = &date
	}

	job, err := h.jobs.EditDetails(c.Request.Context(), tenant, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) deleteJob(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), tenant, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) assignJob(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req assignJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car_id"})
		return
	}

	job, err := h.jobs.Assign(c.Request.Context(), tenant, id, carID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) unassignJob(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	job, err := h.jobs.Unassign(c.Request.Context(), tenant, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) exportSchedule(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req exportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	to, err := parseDate(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}
	cars, err := h.fleet.ListCars(c.Request.Context(), tenant)
	if err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.jobs.ExportSchedule(c.Request.Context(), tenant, service.ExportScheduleInput{
		From: from,
		To:   to,
		Cars: cars,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}
