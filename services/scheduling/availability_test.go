package scheduling

import (
	"context"
	"errors"
	"testing"

	"salonassist/models"
)

const (
	testMonday   = "2026-08-24"
	testSaturday = "2026-08-29"
	testSunday   = "2026-08-30"
)

func manicureCatalog() *fakeCatalogRepo {
	return newFakeCatalogRepo(
		models.Service{ID: "basic-manicure", Name: "Manicure Básica", DurationMinutes: 30, PriceCents: 2300, Active: true},
		models.Service{ID: "acrylic-full-set", Name: "Unhas de Acrílico Conjunto Completo", DurationMinutes: 120, PriceCents: 5500, Active: true},
	)
}

func TestFindAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyLedgerReturnsEarliestFirst", func(t *testing.T) {
		appts := newFakeAppointmentRepo()
		eng := testEngine(appts, newFakeClientRepo(), manicureCatalog())

		slots, err := eng.FindAvailable(ctx, testMonday, "basic-manicure", 10)
		if err != nil {
			t.Fatalf("FindAvailable failed: %v", err)
		}
		if len(slots) != 10 {
			t.Fatalf("expected 10 slots, got %d", len(slots))
		}
		want := 9 * 60
		for i, s := range slots {
			if s.Start != want {
				t.Errorf("slot %d starts at %s, want %s", i, models.Clock(s.Start), models.Clock(want))
			}
			if s.End != s.Start+30 {
				t.Errorf("slot %d spans %d minutes, want 30", i, s.End-s.Start)
			}
			want += 15
		}
	})

	t.Run("BookedIntervalExcludesOverlappingStarts", func(t *testing.T) {
		appts := newFakeAppointmentRepo()
		seedAppt(appts, "+351912000001", testMonday, 9*60, 9*60+30)
		eng := testEngine(appts, newFakeClientRepo(), manicureCatalog())

		slots, err := eng.FindAvailable(ctx, testMonday, "basic-manicure", 10)
		if err != nil {
			t.Fatalf("FindAvailable failed: %v", err)
		}
		starts := make(map[int]bool, len(slots))
		for _, s := range slots {
			starts[s.Start] = true
		}
		// A 30-minute service starting at 09:00 or 09:15 would overlap the
		// 09:00-09:30 booking; 09:30 is the first free start.
		if starts[9*60] || starts[9*60+15] {
			t.Error("slots overlapping the 09:00-09:30 booking were offered")
		}
		if !starts[9*60+30] {
			t.Error("09:30 should be available")
		}
		if slots[0].Start != 9*60+30 {
			t.Errorf("earliest slot = %s, want 09:30", models.Clock(slots[0].Start))
		}
	})

	t.Run("CancelledAppointmentFreesInterval", func(t *testing.T) {
		appts := newFakeAppointmentRepo()
		id := seedAppt(appts, "+351912000001", testMonday, 9*60, 9*60+30)
		eng := testEngine(appts, newFakeClientRepo(), manicureCatalog())

		if err := eng.Cancel(ctx, id); err != nil {
			t.Fatalf("Cancel failed: %v", err)
		}
		slots, err := eng.FindAvailable(ctx, testMonday, "basic-manicure", 1)
		if err != nil {
			t.Fatalf("FindAvailable failed: %v", err)
		}
		if len(slots) != 1 || slots[0].Start != 9*60 {
			t.Fatalf("expected 09:00 to be free again, got %+v", slots)
		}
	})

	t.Run("LongServiceFitsInsideClose", func(t *testing.T) {
		appts := newFakeAppointmentRepo()
		eng := testEngine(appts, newFakeClientRepo(), manicureCatalog())

		slots, err := eng.FindAvailable(ctx, testSaturday, "acrylic-full-set", 100)
		if err != nil {
			t.Fatalf("FindAvailable failed: %v", err)
		}
		if len(slots) == 0 {
			t.Fatal("expected availability for the 120-minute service")
		}
		last := slots[len(slots)-1]
		if last.Start != 17*60 {
			t.Errorf("latest 120-minute start = %s, want 17:00", models.Clock(last.Start))
		}
		for _, s := range slots {
			if s.End > 19*60 {
				t.Errorf("slot %s-%s spills past closing", models.Clock(s.Start), models.Clock(s.End))
			}
		}
	})

	t.Run("ClosedDayYieldsNoSlots", func(t *testing.T) {
		eng := testEngine(newFakeAppointmentRepo(), newFakeClientRepo(), manicureCatalog())

		slots, err := eng.FindAvailable(ctx, testSunday, "basic-manicure", 10)
		if err != nil {
			t.Fatalf("FindAvailable failed: %v", err)
		}
		if len(slots) != 0 {
			t.Errorf("expected no slots on a closed day, got %d", len(slots))
		}
	})

	t.Run("UnknownService", func(t *testing.T) {
		eng := testEngine(newFakeAppointmentRepo(), newFakeClientRepo(), manicureCatalog())

		_, err := eng.FindAvailable(ctx, testMonday, "hot-stone-massage", 10)
		if !errors.Is(err, ErrUnknownService) {
			t.Fatalf("expected ErrUnknownService, got %v", err)
		}
	})

	t.Run("ZeroMaxFallsBackToConfiguredCap", func(t *testing.T) {
		eng := testEngine(newFakeAppointmentRepo(), newFakeClientRepo(), manicureCatalog())
		eng.MaxResults = 3

		slots, err := eng.FindAvailable(ctx, testMonday, "basic-manicure", 0)
		if err != nil {
			t.Fatalf("FindAvailable failed: %v", err)
		}
		if len(slots) != 3 {
			t.Errorf("expected the configured cap of 3 slots, got %d", len(slots))
		}
	})

	t.Run("FullyBookedDay", func(t *testing.T) {
		appts := newFakeAppointmentRepo()
		seedAppt(appts, "+351912000001", testMonday, 9*60, 19*60)
		eng := testEngine(appts, newFakeClientRepo(), manicureCatalog())

		slots, err := eng.FindAvailable(ctx, testMonday, "basic-manicure", 10)
		if err != nil {
			t.Fatalf("FindAvailable failed: %v", err)
		}
		if len(slots) != 0 {
			t.Errorf("expected no slots on a fully booked day, got %d", len(slots))
		}
	})
}
