package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"salonassist/database"
	"salonassist/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a new instance of SessionRepository using MongoDB.
func NewMongoSessionRepo() SessionRepository {
	coll := database.DB().Collection("sessions")
	repo := &MongoSessionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// UpsertCurrent returns the current context for (phone, day), creating it on
// first contact. The upsert keys on the compound index rather than
// read-then-write, so a race between two first contacts yields one document;
// an existing context only gets its last-seen timestamp bumped.
func (r *MongoSessionRepo) UpsertCurrent(ctx context.Context, phone, day string, client models.Client, now time.Time) (*models.SessionContext, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"phone": phone, "day": day}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":         uuid.New().String(),
			"phone":      phone,
			"day":        day,
			"client":     client,
			"summary":    "",
			"created_at": now,
		},
		"$set": bson.M{"last_seen_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var sessionCtx models.SessionContext
	if err := r.coll.FindOneAndUpdate(ctxWithTimeout, filter, update, opts).Decode(&sessionCtx); err != nil {
		return nil, fmt.Errorf("failed to upsert session for %s on %s: %w", phone, day, err)
	}
	return &sessionCtx, nil
}

// GetCurrent retrieves the context for (phone, day) without creating it.
func (r *MongoSessionRepo) GetCurrent(ctx context.Context, phone, day string) (*models.SessionContext, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sessionCtx models.SessionContext
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"phone": phone, "day": day}).Decode(&sessionCtx)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching session for %s on %s: %w", phone, day, err)
	}
	return &sessionCtx, nil
}

// GetByID retrieves a context by its id. Prior-day contexts remain
// readable here for history even though Resolve never returns them.
func (r *MongoSessionRepo) GetByID(ctx context.Context, id string) (*models.SessionContext, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sessionCtx models.SessionContext
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&sessionCtx)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching session %s: %w", id, err)
	}
	return &sessionCtx, nil
}

// TouchLastSeen bumps the last-seen timestamp of a context.
func (r *MongoSessionRepo) TouchLastSeen(ctx context.Context, id string, now time.Time) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctxWithTimeout,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"last_seen_at": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to touch session %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendSummary appends a note to the rolling summary server-side, so
// concurrent appends never lose each other's notes.
func (r *MongoSessionRepo) AppendSummary(ctx context.Context, id, note string, now time.Time) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{
			{Key: "$set", Value: bson.M{
				"summary": bson.M{
					"$cond": bson.A{
						bson.M{"$eq": bson.A{bson.M{"$ifNull": bson.A{"$summary", ""}}, ""}},
						note,
						bson.M{"$concat": bson.A{"$summary", "\n", note}},
					},
				},
				"last_seen_at": now,
			}},
		},
	}
	result, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, pipeline)
	if err != nil {
		return fmt.Errorf("failed to append summary to session %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
