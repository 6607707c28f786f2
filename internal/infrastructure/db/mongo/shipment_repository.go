package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
)

const collectionShipments = "shipments"

type ShipmentRepository struct {
	col *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

// Create inserts a new shipment document. A duplicate tracking id trips the
// unique index and maps to domain.ErrDuplicateTrackingID so the service can
// draw a fresh id.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateTrackingID
		}
		return err
	}
	return nil
}

// FindByTrackingID retrieves a shipment by tracking id. When ownerUserID is
// non-empty an additional owner filter is applied.
func (r *ShipmentRepository) FindByTrackingID(ctx context.Context, trackingID, ownerUserID string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"tracking_id": trackingID}
	if ownerUserID != "" {
		filter["owner_user_id"] = ownerUserID
	}

	var s domain.Shipment
	if err := r.col.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Exists is the read-path existence probe used by the consistency verifier.
func (r *ShipmentRepository) Exists(ctx context.Context, trackingID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"tracking_id": trackingID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns shipments matching the filter.
func (r *ShipmentRepository) List(ctx context.Context, filter ports.ShipmentFilter) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerUserID != "" {
		query["owner_user_id"] = filter.OwnerUserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if !filter.Window.Start.IsZero() || !filter.Window.End.IsZero() {
		created := bson.M{}
		if !filter.Window.Start.IsZero() {
			created["$gte"] = filter.Window.Start
		}
		if !filter.Window.End.IsZero() {
			created["$lt"] = filter.Window.End
		}
		query["created_at"] = created
	}

	opts := options.Find()
	if filter.SortDesc {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shipments []*domain.Shipment
	if err := cursor.All(ctx, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

// UpdateStatus atomically sets the status and location and appends a history
// entry, returning the updated document.
func (r *ShipmentRepository) UpdateStatus(ctx context.Context, trackingID string, status domain.ShipmentStatus, location string, ts time.Time) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":           string(status),
			"current_location": location,
		},
		"$push": bson.M{
			"status_history": bson.M{
				"status":    string(status),
				"location":  location,
				"timestamp": ts.UTC(),
			},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s domain.Shipment
	err := r.col.FindOneAndUpdate(ctx, bson.M{"tracking_id": trackingID}, update, opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Delete removes a shipment. The tracking id itself is never recycled.
func (r *ShipmentRepository) Delete(ctx context.Context, trackingID, ownerUserID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"tracking_id": trackingID}
	if ownerUserID != "" {
		filter["owner_user_id"] = ownerUserID
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

// CountByStatus groups shipment counts by status, optionally windowed on
// created_at. Statuses with no shipments are present with a zero count.
func (r *ShipmentRepository) CountByStatus(ctx context.Context, window domain.DateWindow) (map[domain.ShipmentStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	if !window.Start.IsZero() || !window.End.IsZero() {
		created := bson.M{}
		if !window.Start.IsZero() {
			created["$gte"] = window.Start
		}
		if !window.End.IsZero() {
			created["$lt"] = window.End
		}
		match["created_at"] = created
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[domain.ShipmentStatus]int64, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		counts[status] = 0
	}
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		if status, err := domain.ParseStatus(row.ID); err == nil {
			counts[status] = row.Count
		}
	}
	return counts, cursor.Err()
}

// EnsureIndexes creates the indexes the repository relies on. The unique
// tracking_id index is what makes id allocation collision-free.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tracking_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "owner_user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
