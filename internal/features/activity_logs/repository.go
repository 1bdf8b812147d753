package activity_logs

import (
	"context"
	"fmt"
	"time"

	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionName = "activity_logs"
	queryTimeout   = 5 * time.Second
	taskLogLimit   = 100
)

type ActivityLogRepository struct{}

func (r *ActivityLogRepository) collection() *mongo.Collection {
	return storage.GetMongoDb().Collection(collectionName)
}

func (r *ActivityLogRepository) InsertEntry(entry *ActivityLogEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := r.collection().InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert activity log entry: %w", err)
	}

	return nil
}

func (r *ActivityLogRepository) GetByTaskID(taskID uuid.UUID) ([]ActivityLogEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(taskLogLimit)

	cursor, err := r.collection().Find(ctx, bson.M{"task_id": taskID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []ActivityLogEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode activity log entries: %w", err)
	}

	return entries, nil
}
