package scheduling

import (
	"context"

	appointmentRepo "salonassist/database/repository/appointment"
	catalogRepo "salonassist/database/repository/catalog"
	clientRepo "salonassist/database/repository/client"
	"salonassist/models"
)

// Engine is the scheduling core exposed to the conversational layer:
// advisory availability reads plus the authoritative booking commit.
type Engine interface {
	// FindAvailable returns up to maxResults open slots for the service on
	// the given date, earliest first. An empty result means no availability
	// and is not an error. maxResults <= 0 falls back to the configured cap.
	FindAvailable(ctx context.Context, date, serviceID string, maxResults int) ([]models.TimeSlot, error)
	// Book atomically commits an appointment at the requested start
	// (minutes from midnight) or returns a typed booking error.
	Book(ctx context.Context, phone, serviceID, date string, start int) (*models.Appointment, error)
	// Cancel transitions an appointment to Cancelled, freeing its interval.
	Cancel(ctx context.Context, appointmentID string) error
	// ListServices is a read-through to the service catalog.
	ListServices(ctx context.Context) ([]models.Service, error)
	// ListUpcoming returns a client's active appointments from the given
	// date onward.
	ListUpcoming(ctx context.Context, phone, fromDate string) ([]models.Appointment, error)
}

// ReminderScheduler enqueues a delayed reminder for a confirmed
// appointment. Implemented by the tasks package; nil disables reminders.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt models.Appointment, serviceName string) error
}

// DefaultEngine is the production scheduling engine.
type DefaultEngine struct {
	Appointments appointmentRepo.AppointmentRepository
	Clients      clientRepo.ClientRepository
	Catalog      catalogRepo.CatalogRepository
	Hours        models.OperatingHours
	MaxResults   int // default cap for FindAvailable
	Reminders    ReminderScheduler
}
