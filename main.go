package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autoserve/config"
	"autoserve/cron"
	bookingRepo "autoserve/database/repository/booking"
	branchRepo "autoserve/database/repository/branch"
	branchServiceRepo "autoserve/database/repository/branchservice"
	carRepo "autoserve/database/repository/car"
	customerRepo "autoserve/database/repository/customer"
	serviceRepo "autoserve/database/repository/service"

	"autoserve/database"
	"autoserve/handlers"
	"autoserve/middleware"
	"autoserve/routes"
	bookingService "autoserve/services/booking"
	"autoserve/services/branchservice"
	carService "autoserve/services/car"
	customerService "autoserve/services/customer"
	"autoserve/services/notification"
	"autoserve/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	// Load configuration and initialize the logger.
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize MongoDB and the Redis caches.
	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	branchServices := branchServiceRepo.NewMongoBranchServiceRepo()
	branches := branchRepo.NewMongoBranchRepo()
	services := serviceRepo.NewMongoServiceRepo()
	cars := carRepo.NewMongoCarRepo()
	customers := customerRepo.NewMongoCustomerRepo()

	// Reminder queue client.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer queueClient.Close()

	// Services.
	capacitySvc := &branchservice.DefaultBranchServiceService{
		Repo:     branchServices,
		Services: services,
		Cache:    utils.GetCacheClient(),
	}
	notifierSvc := &notification.DefaultNotificationService{Queue: queueClient}
	bookingSvc := &bookingService.DefaultBookingService{
		Repo:     bookings,
		Capacity: capacitySvc,
		Cars:     cars,
		Notifier: notifierSvc,
	}
	customerSvc := &customerService.DefaultCustomerService{Repo: customers}
	carSvc := &carService.DefaultCarService{Repo: cars, Customers: customers}

	// HTTP router and middleware.
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, &routes.HandlerBundle{
		CustomerSvc:   customerSvc,
		Booking:       handlers.NewBookingHandler(bookingSvc, logger),
		BranchService: handlers.NewBranchServiceHandler(capacitySvc),
		Branch:        handlers.NewBranchHandler(branches),
		Car:           handlers.NewCarHandler(carSvc),
		Customer:      handlers.NewCustomerHandler(customerSvc),
		Service:       handlers.NewServiceHandler(services),
	})

	// Background reminder worker.
	cron.InitReminderWorker(bookings)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("Error disconnecting MongoDB", zap.Error(err))
	}

	logger.Info("Server exited cleanly")
}
