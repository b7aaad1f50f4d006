package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "salonassist/database/repository/appointment"
	catalogRepo "salonassist/database/repository/catalog"
	clientRepo "salonassist/database/repository/client"
	"salonassist/models"
	"salonassist/utils"
)

// Book is the conflict guard: it validates the request, then commits the
// appointment through a single transactional insert that re-validates the
// interval. The re-check runs even when the caller just consulted
// FindAvailable, because the availability read is optimistic and concurrent
// callers may race for the same slot. On conflict the transaction aborts
// and the ledger is left untouched; the engine never picks an alternate
// slot on the caller's behalf.
func (se *DefaultEngine) Book(ctx context.Context, phone, serviceID, date string, start int) (*models.Appointment, error) {
	logger := utils.GetLogger()

	// Validation phase: everything here is checked before any mutation.
	client, err := se.Clients.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, clientRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownClient, phone)
		}
		return nil, storageErr(err)
	}

	svc, err := se.Catalog.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownService, serviceID)
		}
		return nil, storageErr(err)
	}

	end := start + svc.DurationMinutes
	if err := se.validateSlot(date, start, end); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:          uuid.New().String(),
		ClientPhone: client.Phone,
		ServiceID:   svc.ID,
		Date:        date,
		Start:       start,
		End:         end,
		Status:      models.StatusConfirmed,
		CreatedAt:   time.Now(),
	}

	// Commit phase: atomic re-validate + insert.
	if err := se.Appointments.InsertIfFree(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrOverlap) {
			logger.Info("booking lost slot race",
				zap.String("phone", phone),
				zap.String("date", date),
				zap.String("slot", models.Clock(start)),
			)
			return nil, fmt.Errorf("%w: %s %s", ErrSlotConflict, date, models.Clock(start))
		}
		return nil, storageErr(err)
	}

	logger.Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("phone", phone),
		zap.String("service", svc.Name),
		zap.String("date", date),
		zap.String("slot", models.Clock(start)),
	)

	// Reminders are best-effort; a queue hiccup must not unwind a committed
	// booking.
	if se.Reminders != nil {
		if err := se.Reminders.ScheduleReminder(ctx, *appt, svc.Name); err != nil {
			logger.Warn("failed to schedule reminder",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	return appt, nil
}

// validateSlot rejects misaligned or out-of-hours start times before the
// commit is attempted.
func (se *DefaultEngine) validateSlot(date string, start, end int) error {
	day, err := se.Hours.ForDate(date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if day.Closed {
		return fmt.Errorf("%w: salon closed on %s", ErrInvalidSlot, date)
	}
	if start < day.Open || end > day.Close {
		return fmt.Errorf("%w: %s-%s outside opening hours %s-%s",
			ErrInvalidSlot, models.Clock(start), models.Clock(end), models.Clock(day.Open), models.Clock(day.Close))
	}
	if (start-day.Open)%se.Hours.Granularity != 0 {
		return fmt.Errorf("%w: start %s not aligned to %d-minute grid", ErrInvalidSlot, models.Clock(start), se.Hours.Granularity)
	}
	return nil
}

// Cancel transitions an appointment to Cancelled, immediately freeing its
// interval for future availability queries. The row is retained.
func (se *DefaultEngine) Cancel(ctx context.Context, appointmentID string) error {
	logger := utils.GetLogger()

	err := se.Appointments.Cancel(ctx, appointmentID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrNotFound):
			return fmt.Errorf("%w: %s", ErrNotFound, appointmentID)
		case errors.Is(err, appointmentRepo.ErrAlreadyCancelled):
			return fmt.Errorf("%w: %s", ErrAlreadyCancelled, appointmentID)
		default:
			return storageErr(err)
		}
	}

	logger.Info("appointment cancelled", zap.String("appointmentID", appointmentID))
	return nil
}

// ListServices is a read-through to the catalog.
func (se *DefaultEngine) ListServices(ctx context.Context) ([]models.Service, error) {
	services, err := se.Catalog.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return services, nil
}

// ListUpcoming returns a client's active appointments from fromDate onward.
func (se *DefaultEngine) ListUpcoming(ctx context.Context, phone, fromDate string) ([]models.Appointment, error) {
	appts, err := se.Appointments.ListUpcomingByClient(ctx, phone, fromDate)
	if err != nil {
		return nil, storageErr(err)
	}
	return appts, nil
}
