package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
)

type createContainerRequest struct {
	RFID        string  `json:"rfid" binding:"required"`
	Name        string  `json:"name"`
	CapacityM3  float64 `json:"capacity_m3"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	AvailableAt string  `json:"available_at"`
}

type updateContainerRequest struct {
	RFID        *string      `json:"rfid"`
	Name        *string      `json:"name"`
	CapacityM3  *float64     `json:"capacity_m3"`
	Type        *string      `json:"type"`
	Status      *string      `json:"status"`
	AvailableAt *string      `json:"available_at"`
	JobID       optionalUUID `json:"job_id"`
}

func (h *Handler) listContainers(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	containers, err := h.containers.List(c.Request.Context(), tenant)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, containers)
}

func (h *Handler) getContainer(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	container, err := h.containers.Get(c.Request.Context(), tenant, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, container)
}

func (h *Handler) createContainer(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req createContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	container := model.Container{
		RFID:       req.RFID,
		Name:       req.Name,
		CapacityM3: req.CapacityM3,
		Type:       parseWasteCategory(req.Type),
	}
	if req.Status != "" {
		status, valid := model.ParseContainerStatus(req.Status)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		container.Status = status
	}
	if req.AvailableAt != "" {
		availableAt, err := parseDate(req.AvailableAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid available_at"})
			return
		}
		container.AvailableAt = availableAt
	} else {
		container.AvailableAt = time.Now().UTC()
	}

	saved, err := h.containers.Create(c.Request.Context(), tenant, container)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) updateContainer(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := repository.ContainerPatch{
		RFID:       req.RFID,
		Name:       req.Name,
		CapacityM3: req.CapacityM3,
	}
	if req.Type != nil {
		category := parseWasteCategory(*req.Type)
		patch.Type = &category
	}
	if req.Status != nil {
		status, valid := model.ParseContainerStatus(*req.Status)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		patch.Status = &status
	}
	if req.AvailableAt != nil {
		availableAt, err := parseDate(*req.AvailableAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid available_at"})
			return
		}
		patch.AvailableAt = &availableAt
	}
	if req.JobID.Set {
		patch.JobID = &req.JobID.Value
	}

	container, err := h.containers.Update(c.Request.Context(), tenant, id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, container)
}

func (h *Handler) deleteContainer(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.containers.Delete(c.Request.Context(), tenant, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
