package scheduling

import (
	"context"
	"fmt"
)

// ValidateCatalog checks at startup that every catalog service can actually
// be scheduled on the configured grid: positive duration, a whole multiple
// of the slot granularity. A service failing this would silently produce
// unbookable or misaligned spans, so boot refuses it.
func (se *DefaultEngine) ValidateCatalog(ctx context.Context) error {
	services, err := se.Catalog.List(ctx)
	if err != nil {
		return storageErr(err)
	}
	for _, svc := range services {
		if svc.DurationMinutes <= 0 {
			return fmt.Errorf("service %s has non-positive duration %d", svc.ID, svc.DurationMinutes)
		}
		if svc.DurationMinutes%se.Hours.Granularity != 0 {
			return fmt.Errorf("service %s duration %d is not a multiple of the %d-minute grid",
				svc.ID, svc.DurationMinutes, se.Hours.Granularity)
		}
	}
	return nil
}
