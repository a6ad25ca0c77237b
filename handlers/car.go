package handlers

import (
	"errors"
	"net/http"

	carRepo "autoserve/database/repository/car"
	"autoserve/services/car"

	"github.com/gin-gonic/gin"
)

// CarHandler exposes the customer car registry endpoints.
type CarHandler struct {
	Service car.CarService
}

// NewCarHandler creates a CarHandler.
func NewCarHandler(svc car.CarService) *CarHandler {
	return &CarHandler{Service: svc}
}

// RegisterCar handles POST /api/cars. The owning customer is taken from the
// authenticated session.
func (h *CarHandler) RegisterCar(c *gin.Context) {
	var req struct {
		VIN   string `json:"vin"`
		Model string `json:"model"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	customerID := c.GetString("customerID")

	created, err := h.Service.RegisterCar(c.Request.Context(), customerID, req.VIN, req.Model)
	if err != nil {
		switch {
		case errors.Is(err, car.ErrCustomerUnknown):
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		case errors.Is(err, carRepo.ErrDuplicateVIN):
			c.JSON(http.StatusConflict, gin.H{"error": "car with this VIN already registered"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetMyCars handles GET /api/cars.
func (h *CarHandler) GetMyCars(c *gin.Context) {
	cars, err := h.Service.GetCarsByCustomer(c.Request.Context(), c.GetString("customerID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cars", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cars)
}

// GetCarByVIN handles GET /api/cars/vin/:vin.
func (h *CarHandler) GetCarByVIN(c *gin.Context) {
	found, err := h.Service.GetByVIN(c.Request.Context(), c.Param("vin"))
	if errors.Is(err, carRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "car not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch car", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, found)
}

// DeleteCar handles DELETE /api/cars/:carId.
func (h *CarHandler) DeleteCar(c *gin.Context) {
	err := h.Service.Delete(c.Request.Context(), c.Param("carId"))
	if errors.Is(err, carRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "car not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete car", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "car deleted"})
}
