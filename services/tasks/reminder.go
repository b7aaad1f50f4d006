package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"salonassist/models"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the queue task for one appointment reminder. The
// task id is derived from the appointment, so enqueueing the same
// appointment twice (a retried booking call, a re-run backfill) cannot
// produce duplicate reminders.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	if payload.AppointmentID == "" {
		return nil, nil, fmt.Errorf("reminder payload missing appointment id")
	}
	if payload.ClientPhone == "" {
		return nil, nil, fmt.Errorf("reminder payload missing client phone")
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode reminder payload: %w", err)
	}
	opts := []asynq.Option{
		asynq.TaskID("reminder:" + payload.AppointmentID),
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(5),
	}
	return asynq.NewTask(TypeSendReminder, b), opts, nil
}
