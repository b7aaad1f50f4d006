package appointmentRepo

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"salonassist/models"
)

// Transactions need a replica set, so these tests only run against a real
// deployment named by MONGO_TEST_URI (e.g. mongodb://localhost:27017/?replicaSet=rs0).
func testRepo(t *testing.T) *MongoAppointmentRepo {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set; requires a replica-set mongod")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("mongo connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("salonassist_test")
	repo := &MongoAppointmentRepo{
		coll:  db.Collection("appointments"),
		locks: db.Collection("appointment_day_locks"),
	}
	if err := repo.coll.Drop(ctx); err != nil {
		t.Fatalf("drop appointments: %v", err)
	}
	if err := repo.locks.Drop(ctx); err != nil {
		t.Fatalf("drop locks: %v", err)
	}
	if err := repo.ensureIndexes(); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return repo
}

func raceAppt(date string, start, end int) *models.Appointment {
	return &models.Appointment{
		ID:          uuid.New().String(),
		ClientPhone: "+351912000001",
		ServiceID:   "basic-manicure",
		Date:        date,
		Start:       start,
		End:         end,
		Status:      models.StatusConfirmed,
		CreatedAt:   time.Now(),
	}
}

// Two commits racing for intersecting intervals must not both land: the
// shared date-lock write forces the transactions to conflict, and the
// retried loser sees the winner's insert.
func TestInsertIfFreeConcurrentOverlap(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	const racers = 8
	var wg sync.WaitGroup
	results := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.InsertIfFree(ctx, raceAppt("2026-08-24", 9*60, 9*60+30))
		}()
	}
	wg.Wait()
	close(results)

	var wins, overlaps int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrOverlap):
			overlaps++
		default:
			t.Fatalf("unexpected error from racing insert: %v", err)
		}
	}
	if wins != 1 || overlaps != racers-1 {
		t.Fatalf("got %d wins and %d overlaps, want 1 and %d", wins, overlaps, racers-1)
	}

	count, err := repo.coll.CountDocuments(ctx, bson.M{
		"date":   "2026-08-24",
		"status": bson.M{"$in": activeStatuses},
	})
	if err != nil {
		t.Fatalf("count active: %v", err)
	}
	if count != 1 {
		t.Fatalf("ledger holds %d active appointments after race, want 1", count)
	}
}

func TestInsertIfFreeDisjointIntervals(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.InsertIfFree(ctx, raceAppt("2026-08-24", 9*60, 9*60+30)); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	// Adjacent interval shares only a boundary.
	if err := repo.InsertIfFree(ctx, raceAppt("2026-08-24", 9*60+30, 10*60)); err != nil {
		t.Fatalf("adjacent insert failed: %v", err)
	}
	// Same interval on another date.
	if err := repo.InsertIfFree(ctx, raceAppt("2026-08-25", 9*60, 9*60+30)); err != nil {
		t.Fatalf("other-date insert failed: %v", err)
	}

	err := repo.InsertIfFree(ctx, raceAppt("2026-08-24", 9*60+15, 9*60+45))
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap for intersecting interval, got %v", err)
	}
}
