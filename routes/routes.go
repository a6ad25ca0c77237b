package routes

import (
	"net/http"
	"time"

	"autoserve/handlers"
	"autoserve/middleware"
	"autoserve/services/customer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers wired in main.
type HandlerBundle struct {
	CustomerSvc customer.CustomerService

	Booking       *handlers.BookingHandler
	BranchService *handlers.BranchServiceHandler
	Branch        *handlers.BranchHandler
	Car           *handlers.CarHandler
	Customer      *handlers.CustomerHandler
	Service       *handlers.ServiceHandler
}

// RegisterCustomerRoutes registers customer account endpoints.
func RegisterCustomerRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/customers")
	{
		api.POST("/register", hb.Customer.Register)
		api.POST("/login", hb.Customer.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthCustomerMiddleware(hb.CustomerSvc))
		api.GET("/me", hb.Customer.Me)
		api.DELETE("/logout", hb.Customer.Logout)
	}
}

// RegisterCarRoutes registers the customer car registry endpoints.
func RegisterCarRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/cars")
	{
		api.Use(middleware.JWTAuthCustomerMiddleware(hb.CustomerSvc))
		api.POST("", hb.Car.RegisterCar)
		api.GET("", hb.Car.GetMyCars)
		api.GET("/vin/:vin", hb.Car.GetCarByVIN)
		api.DELETE("/:carId", hb.Car.DeleteCar)
	}
}

// RegisterBranchRoutes registers branch and branch-service endpoints.
func RegisterBranchRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/branches")
	{
		api.GET("", hb.Branch.GetAllBranches)
		api.GET("/:branchId", hb.Branch.GetBranchByID)
		api.GET("/:branchId/services", hb.BranchService.GetServicesByBranch)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthCustomerMiddleware(hb.CustomerSvc))
		protected.POST("", hb.Branch.CreateBranch)
		protected.DELETE("/:branchId", hb.Branch.DeleteBranch)
		protected.PUT("/:branchId/services/:serviceId/capacity", hb.BranchService.SetCapacityRule)
	}
}

// RegisterServiceRoutes registers the workshop service catalog endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.Service.GetAllServices)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthCustomerMiddleware(hb.CustomerSvc))
		protected.POST("", hb.Service.CreateService)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCustomerRoutes(r, hb)
	RegisterCarRoutes(r, hb)
	RegisterBranchRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
