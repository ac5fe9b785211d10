package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/wasteops-rental/internal/http/middleware"
	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/service"
)

type Handler struct {
	customers  *service.CustomerService
	fleet      *service.FleetService
	containers *service.ContainerService
	agreements *service.AgreementService
	jobs       *service.JobService
	log        zerolog.Logger
}

func NewHandler(
	customers *service.CustomerService,
	fleet *service.FleetService,
	containers *service.ContainerService,
	agreements *service.AgreementService,
	jobs *service.JobService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		customers:  customers,
		fleet:      fleet,
		containers: containers,
		agreements: agreements,
		jobs:       jobs,
		log:        log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	tenant := router.Group("/tenants/:tenantID")
	tenant.Use(authMiddleware, middleware.TenantGuard())

	tenant.GET("/customers", h.listCustomers)
	tenant.POST("/customers", h.createCustomer)
	tenant.GET("/customers/:id", h.getCustomer)
	tenant.PATCH("/customers/:id", h.updateCustomer)
	tenant.DELETE("/customers/:id", h.deleteCustomer)

	tenant.GET("/employees", h.listEmployees)
	tenant.POST("/employees", h.createEmployee)
	tenant.GET("/employees/:id", h.getEmployee)
	tenant.PATCH("/employees/:id", h.updateEmployee)
	tenant.DELETE("/employees/:id", h.deleteEmployee)

	tenant.GET("/cars", h.listCars)
	tenant.GET("/cars/available", h.listAvailableCars)
	tenant.POST("/cars", h.createCar)
	tenant.GET("/cars/:id", h.getCar)
	tenant.PATCH("/cars/:id", h.updateCar)
	tenant.DELETE("/cars/:id", h.deleteCar)

	tenant.GET("/containers", h.listContainers)
	tenant.POST("/containers", h.createContainer)
	tenant.GET("/containers/:id", h.getContainer)
	tenant.PATCH("/containers/:id", h.updateContainer)
	tenant.DELETE("/containers/:id", h.deleteContainer)

	tenant.GET("/agreements", h.listAgreements)
	tenant.POST("/agreements", h.createAgreement)
	tenant.GET("/agreements/:id", h.getAgreement)
	tenant.PATCH("/agreements/:id", h.updateAgreement)
	tenant.DELETE("/agreements/:id", h.deleteAgreement)
	tenant.GET("/agreements/:id/document", h.agreementDocument)

	tenant.GET("/jobs", h.listJobs)
	tenant.POST("/jobs", h.createJob)
	tenant.GET("/jobs/:id", h.getJob)
	tenant.PATCH("/jobs/:id", h.updateJob)
	tenant.DELETE("/jobs/:id", h.deleteJob)
	tenant.POST("/jobs/:id/assign", h.assignJob)
	tenant.POST("/jobs/:id/unassign", h.unassignJob)
	tenant.POST("/jobs/export", h.exportSchedule)

	tenant.GET("/dispatch/board", h.dispatchBoard)
	tenant.POST("/dispatch/move", h.dispatchMove)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrJobCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// tenantID returns the authenticated tenant. TenantGuard already matched it
// against the path segment.
func tenantID(c *gin.Context) (uuid.UUID, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return uuid.Nil, false
	}
	return principal.TenantID, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseWasteCategory(raw string) model.WasteCategory {
	if strings.TrimSpace(raw) == "" {
		return model.WasteUnknown
	}
	return model.ParseWasteCategory(raw)
}
