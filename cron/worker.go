package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"autoserve/config"
	bookingRepo "autoserve/database/repository/booking"
	"autoserve/models"
	"autoserve/services/tasks"
	"autoserve/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker starts the asynq server that delivers booking reminders.
// It runs until the process exits.
func InitReminderWorker(repo bookingRepo.BookingRepository) {
	logger := utils.GetLogger().With(zap.String("component", "reminderWorker"))

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, func(ctx context.Context, t *asynq.Task) error {
		var payload models.ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal reminder payload: %w", err)
		}

		// The booking may have been cancelled or rescheduled since the
		// reminder was queued; only remind on live bookings.
		booking, err := repo.GetByID(ctx, payload.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				logger.Info("Skipping reminder for missing booking", zap.String("bookingId", payload.BookingID))
				return nil
			}
			return err
		}
		if booking.Status != models.StatusPending {
			logger.Info("Skipping reminder for inactive booking",
				zap.String("bookingId", booking.ID),
				zap.String("status", string(booking.Status)))
			return nil
		}

		logger.Info("Delivering booking reminder",
			zap.String("bookingId", booking.ID),
			zap.String("carId", booking.CarID),
			zap.String("date", booking.Date),
			zap.String("title", payload.Title),
			zap.String("body", payload.Body))
		return nil
	})

	go func() {
		logger.Info("Reminder worker started", zap.String("redisAddr", config.AppConfig.RedisAddr))
		if err := srv.Run(mux); err != nil {
			logger.Error("Reminder worker stopped", zap.Error(err))
		}
	}()
}
