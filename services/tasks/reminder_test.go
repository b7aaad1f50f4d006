package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"

	appointmentRepo "salonassist/database/repository/appointment"
	"salonassist/models"
)

type stubAppointmentRepo struct {
	appts map[string]models.Appointment
}

func (s *stubAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	a, ok := s.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	return &a, nil
}

func (s *stubAppointmentRepo) ListActiveByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) ListUpcomingByClient(ctx context.Context, phone, fromDate string) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) InsertIfFree(ctx context.Context, appt *models.Appointment) error {
	return nil
}

func (s *stubAppointmentRepo) Cancel(ctx context.Context, id string, at time.Time) error {
	return nil
}

type recordingNotifier struct {
	sent []models.ReminderPayload
}

func (r *recordingNotifier) SendReminder(ctx context.Context, payload models.ReminderPayload) error {
	r.sent = append(r.sent, payload)
	return nil
}

func reminderTask(t *testing.T, payload models.ReminderPayload) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return asynq.NewTask(TypeSendReminder, b)
}

func TestNewReminderTask(t *testing.T) {
	payload := models.ReminderPayload{
		AppointmentID: "appt-1",
		ClientPhone:   "+351912000001",
		ServiceName:   "Manicure Básica",
		Date:          "2026-08-24",
		Start:         600,
	}

	t.Run("BuildsTask", func(t *testing.T) {
		task, opts, err := NewReminderTask(payload, time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("NewReminderTask failed: %v", err)
		}
		if task.Type() != TypeSendReminder {
			t.Errorf("task type = %q, want %q", task.Type(), TypeSendReminder)
		}
		// Task id, fire time, retry cap.
		if len(opts) != 3 {
			t.Errorf("expected 3 options, got %d", len(opts))
		}
		var decoded models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &decoded); err != nil {
			t.Fatalf("payload not decodable: %v", err)
		}
		if decoded != payload {
			t.Errorf("payload roundtrip mismatch: %+v", decoded)
		}
	})

	t.Run("RejectsIncompletePayload", func(t *testing.T) {
		missingID := payload
		missingID.AppointmentID = ""
		if _, _, err := NewReminderTask(missingID, time.Now()); err == nil {
			t.Error("expected error for payload without appointment id")
		}

		missingPhone := payload
		missingPhone.ClientPhone = ""
		if _, _, err := NewReminderTask(missingPhone, time.Now()); err == nil {
			t.Error("expected error for payload without client phone")
		}
	})
}

func TestHandleSendReminder(t *testing.T) {
	ctx := context.Background()
	basePayload := models.ReminderPayload{
		AppointmentID: "appt-1",
		ClientPhone:   "+351912000001",
		ServiceName:   "Manicure Básica",
		Date:          "2026-08-24",
		Start:         600,
	}

	t.Run("DeliversForActiveAppointment", func(t *testing.T) {
		notifier := &recordingNotifier{}
		h := &ReminderHandler{
			Appointments: &stubAppointmentRepo{appts: map[string]models.Appointment{
				"appt-1": {ID: "appt-1", Status: models.StatusConfirmed},
			}},
			Notifier: notifier,
		}
		if err := h.HandleSendReminder(ctx, reminderTask(t, basePayload)); err != nil {
			t.Fatalf("HandleSendReminder failed: %v", err)
		}
		if len(notifier.sent) != 1 || notifier.sent[0].AppointmentID != "appt-1" {
			t.Fatalf("reminder not delivered: %+v", notifier.sent)
		}
	})

	t.Run("SkipsCancelledAppointment", func(t *testing.T) {
		notifier := &recordingNotifier{}
		h := &ReminderHandler{
			Appointments: &stubAppointmentRepo{appts: map[string]models.Appointment{
				"appt-1": {ID: "appt-1", Status: models.StatusCancelled},
			}},
			Notifier: notifier,
		}
		if err := h.HandleSendReminder(ctx, reminderTask(t, basePayload)); err != nil {
			t.Fatalf("cancelled appointment should be a silent skip, got %v", err)
		}
		if len(notifier.sent) != 0 {
			t.Error("reminder delivered for a cancelled appointment")
		}
	})

	t.Run("MissingAppointmentSkipsRetry", func(t *testing.T) {
		h := &ReminderHandler{
			Appointments: &stubAppointmentRepo{appts: map[string]models.Appointment{}},
			Notifier:     &recordingNotifier{},
		}
		err := h.HandleSendReminder(ctx, reminderTask(t, basePayload))
		if !errors.Is(err, asynq.SkipRetry) {
			t.Fatalf("expected SkipRetry for a vanished appointment, got %v", err)
		}
	})

	t.Run("MalformedPayloadSkipsRetry", func(t *testing.T) {
		h := &ReminderHandler{
			Appointments: &stubAppointmentRepo{appts: map[string]models.Appointment{}},
			Notifier:     &recordingNotifier{},
		}
		err := h.HandleSendReminder(ctx, asynq.NewTask(TypeSendReminder, []byte("{not json")))
		if !errors.Is(err, asynq.SkipRetry) {
			t.Fatalf("expected SkipRetry for malformed payload, got %v", err)
		}
	})
}
