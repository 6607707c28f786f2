package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
	"github.com/K-HALID007/shipment-tracking-api/internal/pkg/metrics"
)

const initialLocation = "Not Updated"

// allocation retries when the random tracking id collides with an existing one
const maxAllocateRetries = 3

type ShipmentService struct {
	repo     ports.ShipmentRepository
	verifier *Verifier
	audit    ports.AuditRecorder
	policy   domain.TransitionPolicy
	logger   zerolog.Logger
	now      func() time.Time
}

// NewShipmentService wires the shipment use-cases. policy selects the status
// ordering rule; nil falls back to domain.AnyTransition.
func NewShipmentService(
	repo ports.ShipmentRepository,
	verifier *Verifier,
	audit ports.AuditRecorder,
	policy domain.TransitionPolicy,
	logger zerolog.Logger,
) *ShipmentService {
	if policy == nil {
		policy = domain.AnyTransition
	}
	return &ShipmentService{
		repo:     repo,
		verifier: verifier,
		audit:    audit,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateShipment persists a new shipment, then verifies the allocated
// tracking id is observable on the read path before releasing the caller.
// When the visibility budget is exhausted the returned result still carries
// the tracking id — the write did succeed — and the error is
// domain.ErrTrackingNotVisible; callers must retry verification, never
// recreate.
func (s *ShipmentService) CreateShipment(ctx context.Context, input ports.CreateShipmentInput) (*ports.CreateShipmentResult, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	shipment := &domain.Shipment{
		OwnerUserID: input.OwnerUserID,
		Sender: domain.Contact{
			Name:  input.Sender.Name,
			Email: input.Sender.Email,
			Phone: input.Sender.Phone,
		},
		Receiver: domain.Contact{
			Name:  input.Receiver.Name,
			Email: input.Receiver.Email,
			Phone: input.Receiver.Phone,
		},
		Origin:      resolveAddress(input.Origin),
		Destination: resolveAddress(input.Destination),
		Package: domain.PackageDetails{
			Type:   strings.ToLower(input.Package.Type),
			Weight: input.Package.Weight,
			Dimensions: domain.Dimensions{
				Length: input.Package.Dimensions.Length,
				Width:  input.Package.Dimensions.Width,
				Height: input.Package.Dimensions.Height,
			},
			Description:         input.Package.Description,
			SpecialInstructions: input.Package.SpecialInstructions,
		},
		Status:          domain.StatusPending,
		CurrentLocation: initialLocation,
		CreatedAt:       now,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Location: initialLocation, Timestamp: now},
		},
	}

	// The unique index on tracking_id is the collision backstop; a fresh id
	// is drawn on the rare duplicate.
	var err error
	for attempt := 0; attempt < maxAllocateRetries; attempt++ {
		shipment.TrackingID = generateTrackingID()
		err = s.repo.Create(ctx, shipment)
		if !errors.Is(err, domain.ErrDuplicateTrackingID) {
			break
		}
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create shipment")
		return nil, fmt.Errorf("create shipment: %w", err)
	}

	metrics.ShipmentsCreatedTotal.WithLabelValues(shipment.Package.Type).Inc()
	s.audit.Record(domain.AuditEvent{
		TrackingID: shipment.TrackingID,
		Event:      domain.AuditShipmentCreated,
		User:       input.OwnerEmail,
		Status:     string(domain.StatusPending),
		Time:       now,
	})

	s.logger.Info().
		Str("tracking_id", shipment.TrackingID).
		Str("owner_user_id", input.OwnerUserID).
		Msg("shipment created")

	result := &ports.CreateShipmentResult{
		TrackingID:      shipment.TrackingID,
		Status:          string(shipment.Status),
		CurrentLocation: shipment.CurrentLocation,
		CreatedAt:       shipment.CreatedAt,
	}

	visible, err := s.verifier.Verify(ctx, shipment.TrackingID)
	if err != nil {
		return result, err
	}
	if !visible {
		return result, domain.ErrTrackingNotVisible
	}
	return result, nil
}

// GetShipment retrieves a shipment, owner-scoped when OwnerUserID is set.
func (s *ShipmentService) GetShipment(ctx context.Context, input ports.GetShipmentInput) (*domain.Shipment, error) {
	if input.TrackingID == "" {
		return nil, domain.ErrValidation
	}
	return s.repo.FindByTrackingID(ctx, input.TrackingID, input.OwnerUserID)
}

// ListByOwner returns the caller's shipments, newest first.
func (s *ShipmentService) ListByOwner(ctx context.Context, ownerUserID string) ([]*domain.Shipment, error) {
	if ownerUserID == "" {
		return nil, domain.ErrValidation
	}
	return s.repo.List(ctx, ports.ShipmentFilter{OwnerUserID: ownerUserID, SortDesc: true})
}

// UpdateStatus applies an administrative status transition. The status value
// is parsed case-insensitively and rejected before any store access; the
// transition itself is checked against the configured policy. Re-applying
// the current status is always legal and simply refreshes the location.
func (s *ShipmentService) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Shipment, error) {
	if input.TrackingID == "" {
		return nil, domain.ErrValidation
	}
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, fmt.Errorf("status %q: %w", input.Status, err)
	}

	current, err := s.repo.FindByTrackingID(ctx, input.TrackingID, "")
	if err != nil {
		return nil, err
	}

	if status != current.Status && !s.policy(current.Status, status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, current.Status, status)
	}

	location := input.Location
	if location == "" {
		location = current.CurrentLocation
	}

	now := s.now().UTC()
	updated, err := s.repo.UpdateStatus(ctx, input.TrackingID, status, location, now)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(status)).Inc()
	s.audit.Record(domain.AuditEvent{
		TrackingID: input.TrackingID,
		Event:      domain.AuditStatusUpdated,
		User:       input.ActorEmail,
		Status:     string(status),
		Time:       now,
	})

	s.logger.Info().
		Str("tracking_id", input.TrackingID).
		Str("status", string(status)).
		Str("location", location).
		Msg("shipment status updated")

	return updated, nil
}

// DeleteShipment removes a shipment. The tracking id is never reissued.
func (s *ShipmentService) DeleteShipment(ctx context.Context, input ports.DeleteShipmentInput) error {
	if input.TrackingID == "" {
		return domain.ErrValidation
	}

	current, err := s.repo.FindByTrackingID(ctx, input.TrackingID, input.OwnerUserID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, input.TrackingID, input.OwnerUserID); err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}

	metrics.ShipmentsDeletedTotal.Inc()
	s.audit.Record(domain.AuditEvent{
		TrackingID: input.TrackingID,
		Event:      domain.AuditShipmentDeleted,
		User:       input.ActorEmail,
		Status:     string(current.Status),
		Time:       s.now().UTC(),
	})

	s.logger.Info().Str("tracking_id", input.TrackingID).Msg("shipment deleted")
	return nil
}

// VerifyTracking re-runs only the read-path visibility check.
func (s *ShipmentService) VerifyTracking(ctx context.Context, trackingID string) (bool, error) {
	return s.verifier.Verify(ctx, trackingID)
}

// generateTrackingID returns a tracking id in the format TRK-XXXXXXXXXX.
func generateTrackingID() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		// fallback: current nanoseconds
		return fmt.Sprintf("TRK-%010X", time.Now().UnixNano()&0xFFFFFFFFFF)
	}
	return fmt.Sprintf("TRK-%010X", b)
}

// resolveAddress flattens structured address fields into the free-form
// string stored on the shipment.
func resolveAddress(a ports.AddressInput) string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Street, a.City, a.State, a.PostalCode, a.Country)
}

func validateCreateInput(input ports.CreateShipmentInput) error {
	if input.OwnerUserID == "" {
		return fmt.Errorf("owner user id is required: %w", domain.ErrValidation)
	}
	if input.Sender.Name == "" || input.Receiver.Name == "" {
		return fmt.Errorf("sender and receiver names are required: %w", domain.ErrValidation)
	}
	if input.Package.Weight <= 0 {
		return fmt.Errorf("package weight must be positive: %w", domain.ErrValidation)
	}
	for _, t := range domain.PackageTypes {
		if strings.EqualFold(input.Package.Type, t) {
			return nil
		}
	}
	return fmt.Errorf("package type %q: %w", input.Package.Type, domain.ErrValidation)
}
