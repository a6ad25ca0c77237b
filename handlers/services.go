package handlers

import (
	"net/http"

	serviceRepo "autoserve/database/repository/service"
	"autoserve/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServiceHandler exposes the workshop service catalog.
type ServiceHandler struct {
	Repo serviceRepo.ServiceRepository
}

// NewServiceHandler creates a ServiceHandler.
func NewServiceHandler(repo serviceRepo.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{Repo: repo}
}

// GetAllServices handles GET /api/services.
func (h *ServiceHandler) GetAllServices(c *gin.Context) {
	services, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch services", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

// CreateService handles POST /api/services.
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var service models.Service
	if err := c.ShouldBindJSON(&service); err != nil || service.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service name is required"})
		return
	}
	service.ID = uuid.New().String()

	if err := h.Repo.Create(c.Request.Context(), &service); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create service", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, service)
}
