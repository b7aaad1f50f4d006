package scheduling

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	appointmentRepo "salonassist/database/repository/appointment"
	catalogRepo "salonassist/database/repository/catalog"
	clientRepo "salonassist/database/repository/client"
	"salonassist/models"
)

// fakeAppointmentRepo is an in-memory ledger whose InsertIfFree performs the
// same guarded check-then-insert the Mongo transaction does, serialized by a
// mutex.
type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[string]models.Appointment)}
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	return &appt, nil
}

func (f *fakeAppointmentRepo) ListActiveByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.Date == date && a.Active() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (f *fakeAppointmentRepo) ListUpcomingByClient(ctx context.Context, phone, fromDate string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ClientPhone == phone && a.Date >= fromDate && a.Active() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date == out[j].Date {
			return out[i].Start < out[j].Start
		}
		return out[i].Date < out[j].Date
	})
	return out, nil
}

func (f *fakeAppointmentRepo) InsertIfFree(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.Active() && a.Overlaps(appt.Date, appt.Start, appt.End) {
			return appointmentRepo.ErrOverlap
		}
	}
	f.appts[appt.ID] = *appt
	return nil
}

func (f *fakeAppointmentRepo) Cancel(ctx context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if appt.Status == models.StatusCancelled {
		return appointmentRepo.ErrAlreadyCancelled
	}
	appt.Status = models.StatusCancelled
	appt.CancelledAt = &at
	f.appts[id] = appt
	return nil
}

func (f *fakeAppointmentRepo) activeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.appts {
		if a.Active() {
			n++
		}
	}
	return n
}

type fakeCatalogRepo struct {
	services map[string]models.Service
}

func newFakeCatalogRepo(services ...models.Service) *fakeCatalogRepo {
	m := make(map[string]models.Service, len(services))
	for _, s := range services {
		m[s.ID] = s
	}
	return &fakeCatalogRepo{services: m}
}

func (f *fakeCatalogRepo) List(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	return &s, nil
}

func (f *fakeCatalogRepo) SeedDefaults(ctx context.Context) error { return nil }

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]models.Client
}

func newFakeClientRepo(phones ...string) *fakeClientRepo {
	m := make(map[string]models.Client, len(phones))
	for _, p := range phones {
		m[p] = models.Client{Phone: p, CreatedAt: time.Now()}
	}
	return &fakeClientRepo{clients: m}
}

func (f *fakeClientRepo) GetByPhone(ctx context.Context, phone string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[phone]
	if !ok {
		return nil, clientRepo.ErrNotFound
	}
	return &c, nil
}

func (f *fakeClientRepo) UpsertByPhone(ctx context.Context, phone, name string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[phone]
	if !ok {
		c = models.Client{Phone: phone, Name: name, CreatedAt: time.Now()}
		f.clients[phone] = c
	}
	return &c, nil
}

func (f *fakeClientRepo) UpdateProfile(ctx context.Context, phone, name, preferences string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[phone]
	if !ok {
		return clientRepo.ErrNotFound
	}
	if name != "" {
		c.Name = name
	}
	if preferences != "" {
		c.Preferences = preferences
	}
	f.clients[phone] = c
	return nil
}

type fakeReminderScheduler struct {
	mu    sync.Mutex
	calls []models.Appointment
	err   error
}

func (f *fakeReminderScheduler) ScheduleReminder(ctx context.Context, appt models.Appointment, serviceName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, appt)
	return f.err
}

// weekHours is the fixture schedule: Mon-Sat 09:00-19:00, Sun closed,
// 15-minute granularity.
func weekHours() models.OperatingHours {
	var hours models.OperatingHours
	hours.Granularity = 15
	for d := time.Monday; d <= time.Saturday; d++ {
		hours.Days[d] = models.DayHours{Open: 9 * 60, Close: 19 * 60}
	}
	hours.Days[time.Sunday] = models.DayHours{Closed: true}
	return hours
}

func testEngine(appts *fakeAppointmentRepo, clients *fakeClientRepo, catalog *fakeCatalogRepo) *DefaultEngine {
	return &DefaultEngine{
		Appointments: appts,
		Clients:      clients,
		Catalog:      catalog,
		Hours:        weekHours(),
		MaxResults:   10,
	}
}

func confirmedAppt(id, phone, serviceID, date string, start, end int) models.Appointment {
	return models.Appointment{
		ID:          id,
		ClientPhone: phone,
		ServiceID:   serviceID,
		Date:        date,
		Start:       start,
		End:         end,
		Status:      models.StatusConfirmed,
		CreatedAt:   time.Now(),
	}
}

var apptSeq int

func seedAppt(f *fakeAppointmentRepo, phone, date string, start, end int) string {
	apptSeq++
	id := fmt.Sprintf("appt-%d", apptSeq)
	appt := confirmedAppt(id, phone, "basic-manicure", date, start, end)
	f.mu.Lock()
	f.appts[id] = appt
	f.mu.Unlock()
	return id
}
