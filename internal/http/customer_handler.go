package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
)

type createCustomerRequest struct {
	Name       string `json:"name" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type updateCustomerRequest struct {
	Name       *string `json:"name"`
	Type       *string `json:"type"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
}

func (h *Handler) listCustomers(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	customers, err := h.customers.List(c.Request.Context(), tenant)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) getCustomer(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), tenant, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) createCustomer(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customerType, valid := model.ParseCustomerType(req.Type)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type"})
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), tenant, model.Customer{
		Name:       req.Name,
		Type:       customerType,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) updateCustomer(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := repository.CustomerPatch{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	}
	if req.Type != nil {
		customerType, valid := model.ParseCustomerType(*req.Type)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type"})
			return
		}
		patch.Type = &customerType
	}

	customer, err := h.customers.Update(c.Request.Context(), tenant, id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), tenant, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
