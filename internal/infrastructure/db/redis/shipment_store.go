package redis

import (
	"context"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
)

// ShipmentStore decorates a ShipmentRepository with tracking-cache upkeep:
// a successful delete drops the existence mark so a burned tracking id stops
// answering the read-path probe immediately instead of after TTL expiry.
// All other operations pass straight through.
type ShipmentStore struct {
	ports.ShipmentRepository
	cache *TrackingCache
}

func NewShipmentStore(repo ports.ShipmentRepository, cache *TrackingCache) *ShipmentStore {
	return &ShipmentStore{ShipmentRepository: repo, cache: cache}
}

func (s *ShipmentStore) Delete(ctx context.Context, trackingID, ownerUserID string) error {
	if err := s.ShipmentRepository.Delete(ctx, trackingID, ownerUserID); err != nil {
		return err
	}
	// Cache errors are not delete failures; the mark expires on its own.
	_ = s.cache.Invalidate(ctx, trackingID)
	return nil
}

var (
	_ ports.ShipmentRepository = (*ShipmentStore)(nil)
	_ ports.ReadProbe          = (*ReadPath)(nil)
)
