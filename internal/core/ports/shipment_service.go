package ports

import (
	"context"
	"time"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
)

// ContactInput holds sender or receiver contact details.
type ContactInput struct {
	Name  string
	Email string
	Phone string
}

// AddressInput holds the structured address fields a caller submits. The
// service resolves them into a single free-form address string at creation.
type AddressInput struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// DimensionsInput holds package size in centimeters.
type DimensionsInput struct {
	Length float64
	Width  float64
	Height float64
}

// PackageInput holds package details.
type PackageInput struct {
	Type                string
	Weight              float64
	Dimensions          DimensionsInput
	Description         string
	SpecialInstructions string
}

// CreateShipmentInput carries all data needed to create a shipment.
// OwnerUserID is the authenticated caller's identity, passed explicitly —
// core operations never read credentials from ambient state.
type CreateShipmentInput struct {
	OwnerUserID     string
	OwnerEmail      string
	Sender          ContactInput
	Receiver        ContactInput
	Origin          AddressInput
	Destination     AddressInput
	Package         PackageInput
}

// CreateShipmentResult is returned after a successful create. When the
// consistency check timed out the result still carries the tracking id —
// the write succeeded — alongside domain.ErrTrackingNotVisible from the
// service call.
type CreateShipmentResult struct {
	TrackingID      string
	Status          string
	CurrentLocation string
	CreatedAt       time.Time
}

// GetShipmentInput identifies a shipment lookup. OwnerUserID scopes the
// lookup for non-admin callers; empty means unscoped (admin or public track).
type GetShipmentInput struct {
	TrackingID  string
	OwnerUserID string
}

// UpdateStatusInput carries an administrative status transition.
type UpdateStatusInput struct {
	TrackingID string
	Status     string // raw caller value, parsed case-insensitively
	Location   string // optional; empty keeps the current location
	ActorEmail string // for the audit trail
}

// DeleteShipmentInput identifies a shipment deletion.
type DeleteShipmentInput struct {
	TrackingID  string
	OwnerUserID string // empty = admin delete, no owner scoping
	ActorEmail  string
}

// ShipmentService defines the shipment use-cases.
type ShipmentService interface {
	// CreateShipment persists a new shipment and then verifies its tracking
	// id is observable on the read path before releasing the caller.
	CreateShipment(ctx context.Context, input CreateShipmentInput) (*CreateShipmentResult, error)
	GetShipment(ctx context.Context, input GetShipmentInput) (*domain.Shipment, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]*domain.Shipment, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Shipment, error)
	DeleteShipment(ctx context.Context, input DeleteShipmentInput) error
	// VerifyTracking re-runs only the read-path visibility check for an
	// already-created shipment.
	VerifyTracking(ctx context.Context, trackingID string) (bool, error)
}
