package routes

import (
	"autoserve/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the reservation engine endpoints. All of
// them require an authenticated customer.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthCustomerMiddleware(hb.CustomerSvc))
		api.POST("", hb.Booking.CreateBooking)
		api.GET("/car/:carId", hb.Booking.GetBookingsByCar)
		api.GET("/last/:carId", hb.Booking.GetLastBooking)
		api.POST("/reschedule/:oldBookingId", hb.Booking.RescheduleBooking)
		api.PATCH("/cancel/:bookingId", hb.Booking.CancelBooking)
		api.GET("/availability", hb.Booking.GetAvailableDates)
	}
}
