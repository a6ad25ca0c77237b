package notification

import (
	"context"
	"fmt"
	"time"

	"autoserve/models"
	"autoserve/services/tasks"
	"autoserve/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotificationService notifies customers about booking lifecycle events and
// schedules the day-before reminder.
type NotificationService interface {
	BookingCreated(ctx context.Context, booking *models.Booking) error
	BookingRescheduled(ctx context.Context, old, successor *models.Booking) error
	BookingCancelled(ctx context.Context, booking *models.Booking) error
}

// DefaultNotificationService implements NotificationService on top of the
// asynq reminder queue.
type DefaultNotificationService struct {
	Queue *asynq.Client
}

// BookingCreated schedules a reminder for the day before the booking date.
func (s *DefaultNotificationService) BookingCreated(ctx context.Context, booking *models.Booking) error {
	return s.scheduleReminder(ctx, booking, "Service appointment confirmed")
}

// BookingRescheduled schedules a reminder for the successor booking.
func (s *DefaultNotificationService) BookingRescheduled(ctx context.Context, old, successor *models.Booking) error {
	return s.scheduleReminder(ctx, successor, "Service appointment rescheduled")
}

// BookingCancelled needs no outbound message. Any already queued reminder
// will fire against a cancelled booking id; the worker drops those.
func (s *DefaultNotificationService) BookingCancelled(ctx context.Context, booking *models.Booking) error {
	utils.GetLogger().Debug("skipping reminder for cancelled booking",
		zap.String("bookingId", booking.ID))
	return nil
}

func (s *DefaultNotificationService) scheduleReminder(ctx context.Context, booking *models.Booking, title string) error {
	bookingDay, err := time.Parse(models.DateLayout, booking.Date)
	if err != nil {
		return fmt.Errorf("invalid booking date %q: %w", booking.Date, err)
	}
	// Remind at 09:00 the day before the appointment.
	fireAt := bookingDay.AddDate(0, 0, -1).Add(9 * time.Hour)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now().Add(time.Minute)
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		CarID:     booking.CarID,
		BranchID:  booking.BranchID,
		ServiceID: booking.ServiceID,
		Date:      booking.Date,
		Title:     title,
		Body:      fmt.Sprintf("Your vehicle is booked for service on %s.", booking.Date),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
