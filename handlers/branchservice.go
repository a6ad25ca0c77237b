package handlers

import (
	"net/http"

	"autoserve/models"
	"autoserve/services/branchservice"

	"github.com/gin-gonic/gin"
)

// BranchServiceHandler exposes capacity rules and the per-branch service
// catalog.
type BranchServiceHandler struct {
	Service branchservice.BranchServiceService
}

// NewBranchServiceHandler creates a BranchServiceHandler.
func NewBranchServiceHandler(svc branchservice.BranchServiceService) *BranchServiceHandler {
	return &BranchServiceHandler{Service: svc}
}

// GetServicesByBranch handles GET /api/branches/:branchId/services.
func (h *BranchServiceHandler) GetServicesByBranch(c *gin.Context) {
	services, err := h.Service.GetServicesByBranch(c.Request.Context(), c.Param("branchId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch branch services", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

// SetCapacityRule handles PUT /api/branches/:branchId/services/:serviceId/capacity.
func (h *BranchServiceHandler) SetCapacityRule(c *gin.Context) {
	var req struct {
		CapacityPerDay int `json:"capacity_per_day"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CapacityPerDay <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacity_per_day must be a positive integer"})
		return
	}

	rule := &models.BranchService{
		BranchID:       c.Param("branchId"),
		ServiceID:      c.Param("serviceId"),
		CapacityPerDay: req.CapacityPerDay,
	}
	if err := h.Service.SetCapacityRule(c.Request.Context(), rule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set capacity rule", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rule)
}
