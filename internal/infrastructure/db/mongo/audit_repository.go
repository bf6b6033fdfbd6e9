package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

const (
	auditCollection    = "audit_records"
	securityCollection = "security_events"
)

// AuditRepository implements ports.AuditRepository on MongoDB. It exposes
// insert and paged reads only; records are never updated or removed.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) Insert(ctx context.Context, record *domain.AuditRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// FindByEntity returns one page of records for the entity, newest first, and
// the total count across all pages.
func (r *AuditRepository) FindByEntity(ctx context.Context, entityType domain.EntityType, entityID string, page, limit int) ([]*domain.AuditRecord, int64, error) {
	filter := bson.M{
		"entity_type": string(entityType),
		"entity_id":   entityID,
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count audit records: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find audit records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.AuditRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, fmt.Errorf("decode audit records: %w", err)
	}
	return records, total, nil
}

// EnsureIndexes creates the entity lookup index used by history queries.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity_type", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	return err
}

// SecurityEventRepository implements ports.SecurityEventRepository on MongoDB.
type SecurityEventRepository struct {
	coll *mongo.Collection
}

func NewSecurityEventRepository(db *mongo.Database) *SecurityEventRepository {
	return &SecurityEventRepository{coll: db.Collection(securityCollection)}
}

func (r *SecurityEventRepository) Insert(ctx context.Context, event *domain.SecurityEvent) error {
	if event.ID == "" {
		event.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}
