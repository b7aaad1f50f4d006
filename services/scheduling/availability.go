package scheduling

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "salonassist/database/repository/catalog"
	"salonassist/models"
	"salonassist/utils"

	"go.uber.org/zap"
)

// FindAvailable computes open slots for a service on a date. The read is
// advisory and lock-free: a returned slot can still be lost to a concurrent
// commit, which Book catches with its transactional re-check.
func (se *DefaultEngine) FindAvailable(ctx context.Context, date, serviceID string, maxResults int) ([]models.TimeSlot, error) {
	logger := utils.GetLogger()

	svc, err := se.Catalog.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownService, serviceID)
		}
		return nil, storageErr(err)
	}

	if maxResults <= 0 {
		maxResults = se.MaxResults
	}

	day, err := se.Hours.ForDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if day.Closed {
		return nil, nil
	}

	existing, err := se.Appointments.ListActiveByDate(ctx, date)
	if err != nil {
		return nil, storageErr(err)
	}

	grid, err := GenerateSlotGrid(date, se.Hours)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	// Every base slot boundary is a candidate start; individual base slots
	// are not checked in isolation, the whole [start, start+duration) span
	// must fit before closing and be free.
	duration := svc.DurationMinutes
	var available []models.TimeSlot
	for _, base := range grid {
		end := base.Start + duration
		if end > day.Close {
			break
		}
		if overlapsAny(existing, date, base.Start, end) {
			continue
		}
		available = append(available, models.TimeSlot{Date: date, Start: base.Start, End: end})
		if len(available) >= maxResults {
			break
		}
	}

	logger.Debug("availability computed",
		zap.String("date", date),
		zap.String("serviceID", serviceID),
		zap.Int("openSlots", len(available)),
	)
	return available, nil
}

func overlapsAny(appts []models.Appointment, date string, start, end int) bool {
	for _, a := range appts {
		if a.Active() && a.Overlaps(date, start, end) {
			return true
		}
	}
	return false
}
