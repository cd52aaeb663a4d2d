package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodmarket/platform-api/internal/core/domain"
)

const collectionAuthEvents = "auth_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuthEvents)}
}

// InsertEvent persists an auth event to the auth_events collection.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, auditDocument(event, time.Now().UTC())); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

func auditDocument(event *domain.AuthEvent, processedAt time.Time) bson.M {
	doc := bson.M{
		"type":         string(event.Type),
		"email":        event.Email,
		"occurred_at":  event.OccurredAt.UTC(),
		"processed_at": processedAt,
	}
	if event.Subject != "" {
		doc["subject"] = event.Subject
	}
	return doc
}

// EnsureIndexes creates lookup indexes for per-account and per-email queries.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "occurred_at", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure audit indexes: %w", err)
	}
	return nil
}
