package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"salonassist/database"
	"salonassist/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
// locks holds one document per date; every booking commit writes it so
// concurrent transactions for the same day conflict instead of interleaving.
type MongoAppointmentRepo struct {
	coll  *mongo.Collection
	locks *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{
		coll:  database.DB().Collection("appointments"),
		locks: database.DB().Collection("appointment_day_locks"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// activeStatuses is the set of statuses that hold their interval.
var activeStatuses = bson.A{models.StatusPending, models.StatusConfirmed}

// GetByID retrieves an appointment by its id.
func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&appt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

// ListActiveByDate returns Pending/Confirmed appointments for a date,
// ordered by start time.
func (r *MongoAppointmentRepo) ListActiveByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":   date,
		"status": bson.M{"$in": activeStatuses},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments for %s: %w", date, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var appts []models.Appointment
	if err := cursor.All(ctxWithTimeout, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// ListUpcomingByClient returns a client's active appointments on or after
// the given date, ordered chronologically.
func (r *MongoAppointmentRepo) ListUpcomingByClient(ctx context.Context, phone, fromDate string) ([]models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"client_phone": phone,
		"date":         bson.M{"$gte": fromDate},
		"status":       bson.M{"$in": activeStatuses},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments for client %s: %w", phone, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var appts []models.Appointment
	if err := cursor.All(ctxWithTimeout, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// Cancel transitions an appointment to Cancelled. Cancelling a nonexistent
// appointment returns ErrNotFound; cancelling an already-Cancelled one
// returns ErrAlreadyCancelled. The document is never deleted.
func (r *MongoAppointmentRepo) Cancel(ctx context.Context, id string, at time.Time) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": activeStatuses},
	}
	update := bson.M{
		"$set": bson.M{
			"status":       models.StatusCancelled,
			"cancelled_at": at,
		},
	}
	result, err := r.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error cancelling appointment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		// Either the appointment does not exist or it is already terminal.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyCancelled
	}
	return nil
}
