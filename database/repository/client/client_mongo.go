package clientRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonassist/database"
	"salonassist/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no client exists for the given phone number.
var ErrNotFound = errors.New("client not found")

// MongoClientRepo implements ClientRepository using MongoDB.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo creates a new instance of ClientRepository using MongoDB.
func NewMongoClientRepo() ClientRepository {
	coll := database.DB().Collection("clients")
	repo := &MongoClientRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// GetByPhone retrieves a client by their phone number.
func (r *MongoClientRepo) GetByPhone(ctx context.Context, phone string) (*models.Client, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var client models.Client
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"phone": phone}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching client %s: %w", phone, err)
	}
	return &client, nil
}

// UpsertByPhone returns the client record for the phone number, creating it
// on first contact. The unique phone index plus the upsert keep concurrent
// first contacts from producing duplicate clients.
func (r *MongoClientRepo) UpsertByPhone(ctx context.Context, phone, name string) (*models.Client, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"phone": phone}
	update := bson.M{
		"$setOnInsert": bson.M{
			"phone":      phone,
			"name":       name,
			"created_at": now,
		},
		"$set": bson.M{"updated_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var client models.Client
	if err := r.coll.FindOneAndUpdate(ctxWithTimeout, filter, update, opts).Decode(&client); err != nil {
		return nil, fmt.Errorf("failed to upsert client %s: %w", phone, err)
	}
	return &client, nil
}

// UpdateProfile sets the client's display name and/or preferences.
func (r *MongoClientRepo) UpdateProfile(ctx context.Context, phone, name, preferences string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if name != "" {
		set["name"] = name
	}
	if preferences != "" {
		set["preferences"] = preferences
	}

	result, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"phone": phone}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", phone, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
