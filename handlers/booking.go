package handlers

import (
	"net/http"

	"autoserve/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the reservation engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// respondBookingError maps the booking error taxonomy onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch booking.ErrorCode(err) {
	case booking.CodeValidation:
		status = http.StatusBadRequest
	case booking.CodeNotFound:
		status = http.StatusNotFound
	case booking.CodeConflict:
		status = http.StatusConflict
	case booking.CodeBusinessRule:
		status = http.StatusUnprocessableEntity
	}

	body := gin.H{"error": err.Error()}
	if be, ok := err.(*booking.BookingError); ok {
		body["error"] = be.Message
		body["code"] = be.Code
		if len(be.AvailableDates) > 0 {
			body["available_dates"] = be.AvailableDates
		}
	}
	c.JSON(status, body)
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.Logger.Debug("booking request rejected",
			zap.String("carId", req.CarID),
			zap.Error(err))
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBookingsByCar handles GET /api/bookings/car/:carId.
func (h *BookingHandler) GetBookingsByCar(c *gin.Context) {
	bookings, err := h.Service.GetBookingsByCar(c.Request.Context(), c.Param("carId"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetLastBooking handles GET /api/bookings/last/:carId.
func (h *BookingHandler) GetLastBooking(c *gin.Context) {
	last, err := h.Service.GetLastBooking(c.Request.Context(), c.Param("carId"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, last)
}

// RescheduleBooking handles POST /api/bookings/reschedule/:oldBookingId.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	var req struct {
		BookingDate string `json:"booking_date"`
		NewComments string `json:"new_comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	successor, err := h.Service.RescheduleBooking(c.Request.Context(), c.Param("oldBookingId"), req.BookingDate, req.NewComments)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successor)
}

// CancelBooking handles PATCH /api/bookings/cancel/:bookingId.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	cancelled, err := h.Service.CancelBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

// GetAvailableDates handles GET /api/bookings/availability.
func (h *BookingHandler) GetAvailableDates(c *gin.Context) {
	branchID := c.Query("branch_id")
	serviceID := c.Query("service_id")

	dates, err := h.Service.FindAvailableDates(c.Request.Context(), branchID, serviceID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available_dates": dates})
}
