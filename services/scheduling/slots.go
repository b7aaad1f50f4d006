package scheduling

import "salonassist/models"

// GenerateSlotGrid produces the universe of bookable base slots for a date,
// one per granularity step within the day's open interval. Pure function of
// its inputs. A closed weekday yields an empty grid, and a trailing
// remainder shorter than the granularity is dropped rather than offered as
// a partial slot.
func GenerateSlotGrid(date string, hours models.OperatingHours) ([]models.TimeSlot, error) {
	day, err := hours.ForDate(date)
	if err != nil {
		return nil, err
	}
	if day.Closed {
		return nil, nil
	}

	var grid []models.TimeSlot
	for start := day.Open; start+hours.Granularity <= day.Close; start += hours.Granularity {
		grid = append(grid, models.TimeSlot{
			Date:  date,
			Start: start,
			End:   start + hours.Granularity,
		})
	}
	return grid, nil
}
