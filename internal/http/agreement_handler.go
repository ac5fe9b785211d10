package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
)

type createAgreementRequest struct {
	CustomerID  string `json:"customer_id" binding:"required"`
	ContainerID string `json:"container_id"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	ValidFrom   string `json:"valid_from" binding:"required"`
	ValidTo     string `json:"valid_to"`
	Repetition  string `json:"repetition"`
	Comment     string `json:"comment"`
}

type updateAgreementRequest struct {
	ContainerID optionalUUID `json:"container_id"`
	Type        *string      `json:"type"`
	Status      *string      `json:"status"`
	ValidFrom   *string      `json:"valid_from"`
	ValidTo     optionalDate `json:"valid_to"`
	Repetition  *string      `json:"repetition"`
	Comment     *string      `json:"comment"`
}

func (h *Handler) listAgreements(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	agreements, err := h.agreements.List(c.Request.Context(), tenant)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreements)
}

func (h *Handler) getAgreement(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	agreement, err := h.agreements.Get(c.Request.Context(), tenant, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreement)
}

func (h *Handler) createAgreement(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req createAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
		return
	}
	containerID, err := parseOptionalUUID(req.ContainerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid container_id"})
		return
	}
	validFrom, err := parseDate(req.ValidFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid valid_from"})
		return
	}
	var validTo *time.Time
	if req.ValidTo != "" {
		parsed, err := parseDate(req.ValidTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid valid_to"})
			return
		}
		validTo = &parsed
	}
	repetition, valid := model.ParseRepetition(req.Repetition)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid repetition"})
		return
	}

	agreement := model.Agreement{
		CustomerID:  customerID,
		ContainerID: containerID,
		Type:        parseWasteCategory(req.Type),
		Status:      model.ParseAgreementStatus(req.Status),
		ValidFrom:   validFrom,
		ValidTo:     validTo,
		Repetition:  repetition,
		Comment:     req.Comment,
	}
	if req.Status == "" {
		agreement.Status = model.AgreementCreated
	}

	saved, err := h.agreements.Create(c.Request.Context(), tenant, agreement)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) updateAgreement(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := repository.AgreementPatch{Comment: req.Comment}
	if req.ContainerID.Set {
		patch.ContainerID = &req.ContainerID.Value
	}
	if req.Type != nil {
		category := parseWasteCategory(*req.Type)
		patch.Type = &category
	}
	if req.Status != nil {
		status := model.ParseAgreementStatus(*req.Status)
		patch.Status = &status
	}
	if req.ValidFrom != nil {
		validFrom, err := parseDate(*req.ValidFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid valid_from"})
			return
		}
		patch.ValidFrom = &validFrom
	}
	if req.ValidTo.Set {
		var validTo *time.Time
		if !req.ValidTo.Null {
			parsed, err := parseDate(req.ValidTo.Value)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid valid_to"})
				return
			}
			validTo = &parsed
		}
		patch.ValidTo = &validTo
	}
	if req.Repetition != nil {
		repetition, valid := model.ParseRepetition(*req.Repetition)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid repetition"})
			return
		}
		patch.Repetition = &repetition
	}

	agreement, err := h.agreements.Update(c.Request.Context(), tenant, id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreement)
}

func (h *Handler) deleteAgreement(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.agreements.Delete(c.Request.Context(), tenant, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) agreementDocument(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.agreements.Document(c.Request.Context(), tenant, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}
