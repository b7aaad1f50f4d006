package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"salonassist/models"
	"salonassist/utils"
)

// ReminderScheduler enqueues delayed appointment reminders on the task
// queue. Delivery fires Lead before the appointment start, in the salon's
// local timezone.
type ReminderScheduler struct {
	Client   *asynq.Client
	Lead     time.Duration
	Location *time.Location
}

func NewReminderScheduler(client *asynq.Client, lead time.Duration, loc *time.Location) *ReminderScheduler {
	return &ReminderScheduler{Client: client, Lead: lead, Location: loc}
}

// ScheduleReminder enqueues a reminder for a confirmed appointment.
// Appointments starting within the lead window get the reminder
// immediately.
func (s *ReminderScheduler) ScheduleReminder(ctx context.Context, appt models.Appointment, serviceName string) error {
	day, err := time.ParseInLocation("2006-01-02", appt.Date, s.Location)
	if err != nil {
		return fmt.Errorf("invalid appointment date %q: %w", appt.Date, err)
	}
	startsAt := day.Add(time.Duration(appt.Start) * time.Minute)
	fireAt := startsAt.Add(-s.Lead)
	if now := time.Now().In(s.Location); fireAt.Before(now) {
		fireAt = now
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		ClientPhone:   appt.ClientPhone,
		ServiceName:   serviceName,
		Date:          appt.Date,
		Start:         appt.Start,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}

	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		// A reminder for this appointment is already queued.
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}

	utils.GetLogger().Debug("reminder enqueued",
		zap.String("taskID", info.ID),
		zap.String("appointmentID", appt.ID),
		zap.Time("fireAt", fireAt),
	)
	return nil
}
