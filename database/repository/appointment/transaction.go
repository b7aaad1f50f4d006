package appointmentRepo

import (
	"context"
	"errors"
	"fmt"

	"salonassist/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertIfFree commits an appointment inside a MongoDB transaction. Snapshot
// isolation alone cannot reject two racing inserts of distinct documents:
// both would count zero overlaps against their own snapshots and commit. So
// every commit also writes the shared per-date lock document. Racing commits
// for the same date write-conflict on that document; the driver retries the
// losing transaction, whose re-count then runs against a snapshot containing
// the winner's insert and yields ErrOverlap. The ledger is never mutated on
// conflict.
func (r *MongoAppointmentRepo) InsertIfFree(ctx context.Context, appt *models.Appointment) error {
	lockFilter := bson.M{"date": appt.Date}

	// The lock document is created outside the transaction, so the
	// transactional write below is always an update on an existing document
	// and participates in write-conflict detection.
	if _, err := r.locks.UpdateOne(ctx, lockFilter,
		bson.M{"$setOnInsert": bson.M{"date": appt.Date}},
		options.Update().SetUpsert(true),
	); err != nil {
		return fmt.Errorf("could not ensure date lock for %s: %w", appt.Date, err)
	}

	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.locks.UpdateOne(sc, lockFilter,
			bson.M{"$inc": bson.M{"commits": 1}},
		); err != nil {
			return nil, fmt.Errorf("date lock write failed: %w", err)
		}

		filter := bson.M{
			"date":   appt.Date,
			"status": bson.M{"$in": activeStatuses},
			"start":  bson.M{"$lt": appt.End},
			"end":    bson.M{"$gt": appt.Start},
		}
		count, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return nil, fmt.Errorf("overlap re-check failed: %w", err)
		}
		if count > 0 {
			return nil, ErrOverlap
		}

		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return nil, fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, ErrOverlap) {
			return ErrOverlap
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}
