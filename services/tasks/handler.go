package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	appointmentRepo "salonassist/database/repository/appointment"
	"salonassist/models"
	"salonassist/utils"
)

// Notifier delivers a reminder to the client. The SMS transport lives
// outside this core; LogNotifier stands in until one is plugged.
type Notifier interface {
	SendReminder(ctx context.Context, payload models.ReminderPayload) error
}

// LogNotifier logs reminders instead of sending them.
type LogNotifier struct{}

func (LogNotifier) SendReminder(ctx context.Context, payload models.ReminderPayload) error {
	utils.GetLogger().Info("appointment reminder due",
		zap.String("phone", payload.ClientPhone),
		zap.String("service", payload.ServiceName),
		zap.String("date", payload.Date),
		zap.String("time", models.Clock(payload.Start)),
	)
	return nil
}

// ReminderHandler processes queued reminder tasks.
type ReminderHandler struct {
	Appointments appointmentRepo.AppointmentRepository
	Notifier     Notifier
}

// HandleSendReminder delivers a reminder unless the appointment was
// cancelled after the task was enqueued.
func (h *ReminderHandler) HandleSendReminder(ctx context.Context, t *asynq.Task) error {
	var payload models.ReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to decode reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	appt, err := h.Appointments.GetByID(ctx, payload.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return fmt.Errorf("appointment %s gone: %w", payload.AppointmentID, asynq.SkipRetry)
		}
		return fmt.Errorf("failed to load appointment %s: %w", payload.AppointmentID, err)
	}
	if !appt.Active() {
		utils.GetLogger().Debug("skipping reminder for cancelled appointment",
			zap.String("appointmentID", appt.ID))
		return nil
	}

	return h.Notifier.SendReminder(ctx, payload)
}
