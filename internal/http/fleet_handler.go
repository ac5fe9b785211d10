package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
)

type createCarRequest struct {
	Regnr  string `json:"regnr" binding:"required"`
	Model  string `json:"model"`
	Status string `json:"status"`
}

type updateCarRequest struct {
	Regnr  *string `json:"regnr"`
	Model  *string `json:"model"`
	Status *string `json:"status"`
}

type createEmployeeRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
	CarID  string `json:"car_id"`
}

type updateEmployeeRequest struct {
	Name   *string      `json:"name"`
	Email  *string      `json:"email"`
	Phone  *string      `json:"phone"`
	Status *string      `json:"status"`
	CarID  optionalUUID `json:"car_id"`
}

func (h *Handler) listCars(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	cars, err := h.fleet.ListCars(c.Request.Context(), tenant)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

func (h *Handler) listAvailableCars(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	cars, err := h.fleet.ListAvailableCars(c.Request.Context(), tenant)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

func (h *Handler) getCar(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	car, err := h.fleet.GetCar(c.Request.Context(), tenant, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *Handler) createCar(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req createCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car := model.Car{Regnr: req.Regnr, Model: req.Model}
	if req.Status != "" {
		status, valid := model.ParseCarStatus(req.Status)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		car.Status = status
	}

	saved, err := h.fleet.CreateCar(c.Request.Context(), tenant, car)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) updateCar(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := repository.CarPatch{Regnr: req.Regnr, Model: req.Model}
	if req.Status != nil {
		status, valid := model.ParseCarStatus(*req.Status)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		patch.Status = &status
	}

	car, err := h.fleet.UpdateCar(c.Request.Context(), tenant, id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *Handler) deleteCar(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.fleet.DeleteCar(c.Request.Context(), tenant, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) listEmployees(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	employees, err := h.fleet.ListEmployees(c.Request.Context(), tenant)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *Handler) getEmployee(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	employee, err := h.fleet.GetEmployee(c.Request.Context(), tenant, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *Handler) createEmployee(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee := model.Employee{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if req.Status != "" {
		status, valid := model.ParseEmployeeStatus(req.Status)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		employee.Status = status
	}
	carID, err := parseOptionalUUID(req.CarID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car_id"})
		return
	}
	employee.CarID = carID

	saved, err := h.fleet.CreateEmployee(c.Request.Context(), tenant, employee)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) updateEmployee(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := repository.EmployeePatch{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if req.Status != nil {
		status, valid := model.ParseEmployeeStatus(*req.Status)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		patch.Status = &status
	}
	if req.CarID.Set {
		patch.CarID = &req.CarID.Value
	}

	employee, err := h.fleet.UpdateEmployee(c.Request.Context(), tenant, id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *Handler) deleteEmployee(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.fleet.DeleteEmployee(c.Request.Context(), tenant, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
