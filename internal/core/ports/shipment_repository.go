package ports

import (
	"context"
	"time"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
)

// ShipmentFilter carries query parameters for listing shipments.
type ShipmentFilter struct {
	OwnerUserID string            // empty = no owner scoping (admin)
	Status      string            // optional: canonical status value
	Window      domain.DateWindow // zero window = unbounded
	Limit       int               // 0 = no limit
	SortDesc    bool              // newest first when true
}

// ShipmentRepository defines persistence operations for shipments.
// The write path talks to the primary; Exists is served by the read path
// (cache or replica) and may lag behind an acknowledged Create.
type ShipmentRepository interface {
	Create(ctx context.Context, s *domain.Shipment) error
	// FindByTrackingID retrieves a shipment. When ownerUserID is non-empty
	// the query is additionally scoped to that owner.
	FindByTrackingID(ctx context.Context, trackingID, ownerUserID string) (*domain.Shipment, error)
	List(ctx context.Context, filter ShipmentFilter) ([]*domain.Shipment, error)
	// UpdateStatus atomically sets status and location and appends a history
	// entry, returning the updated record. Concurrent updates resolve
	// last-write-wins at the store.
	UpdateStatus(ctx context.Context, trackingID string, status domain.ShipmentStatus, location string, ts time.Time) (*domain.Shipment, error)
	// Delete removes the shipment. The tracking id stays burned: it is never
	// handed out again.
	Delete(ctx context.Context, trackingID, ownerUserID string) error
	CountByStatus(ctx context.Context, window domain.DateWindow) (map[domain.ShipmentStatus]int64, error)
}

// ReadProbe is the read-path existence check the consistency verifier polls.
type ReadProbe interface {
	Exists(ctx context.Context, trackingID string) (bool, error)
}

// AuditRepository persists and queries the system audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	// ListRecent returns up to limit events inside window, newest first.
	ListRecent(ctx context.Context, window domain.DateWindow, limit int) ([]domain.AuditEvent, error)
	CountByEvent(ctx context.Context, window domain.DateWindow) (map[string]int64, error)
}

// AuditRecorder is the fire-and-forget sink services push audit events to.
// The queue dispatcher implements it; recording never blocks a request.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
