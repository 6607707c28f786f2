package domain

import (
	"errors"
	"strings"
	"time"
)

// ShipmentStatus is the lifecycle state of a shipment. The canonical values
// are display-cased; business-logic comparisons go through ParseStatus so
// that upstream casing inconsistencies are tolerated.
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "Pending"
	StatusInTransit      ShipmentStatus = "In Transit"
	StatusOutForDelivery ShipmentStatus = "Out for Delivery"
	StatusDelivered      ShipmentStatus = "Delivered"
)

// AllStatuses lists the canonical statuses in lifecycle order.
var AllStatuses = []ShipmentStatus{
	StatusPending,
	StatusInTransit,
	StatusOutForDelivery,
	StatusDelivered,
}

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrDuplicateTrackingID = errors.New("tracking id already exists")
var ErrInvalidStatus = errors.New("invalid shipment status")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrTrackingNotVisible = errors.New("tracking id not yet visible on the read path")
var ErrValidation = errors.New("validation failed")
var ErrForbidden = errors.New("access forbidden")

// ParseStatus resolves a status string to its canonical form,
// case-insensitively. Returns ErrInvalidStatus for anything outside the four
// canonical values.
func ParseStatus(s string) (ShipmentStatus, error) {
	for _, status := range AllStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// statusRank is the position of a canonical status on the lifecycle chain.
func statusRank(s ShipmentStatus) int {
	for i, status := range AllStatuses {
		if status == s {
			return i
		}
	}
	return -1
}

// TransitionPolicy decides whether a shipment may move from one status to
// another. Same-status rewrites (location-only updates) must be allowed by
// every policy.
type TransitionPolicy func(from, to ShipmentStatus) bool

// AnyTransition permits every transition between canonical statuses. This is
// the behaviour administrators rely on today: a shipment can be marked
// Delivered straight from Pending.
func AnyTransition(from, to ShipmentStatus) bool {
	return statusRank(to) >= 0
}

// ForwardOnly permits only transitions that do not move backwards along the
// lifecycle chain. Same-status rewrites remain legal.
func ForwardOnly(from, to ShipmentStatus) bool {
	fromRank, toRank := statusRank(from), statusRank(to)
	return fromRank >= 0 && toRank >= fromRank
}

// Contact identifies a sender or receiver.
type Contact struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

// Dimensions is the physical size of a package in centimeters.
type Dimensions struct {
	Length float64 `json:"length" bson:"length"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// PackageTypes enumerates the accepted package types.
var PackageTypes = []string{"standard", "express", "fragile", "oversized"}

// PackageDetails describes what is being shipped.
type PackageDetails struct {
	Type                string     `json:"type" bson:"type"`
	Weight              float64    `json:"weight" bson:"weight"`
	Dimensions          Dimensions `json:"dimensions" bson:"dimensions"`
	Description         string     `json:"description,omitempty" bson:"description,omitempty"`
	SpecialInstructions string     `json:"special_instructions,omitempty" bson:"special_instructions,omitempty"`
}

// StatusHistoryEntry records a single status change on a shipment.
type StatusHistoryEntry struct {
	Status    ShipmentStatus `json:"status" bson:"status"`
	Location  string         `json:"location,omitempty" bson:"location,omitempty"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}

// Shipment is the core aggregate root. TrackingID is assigned once at
// creation and never reassigned, even after the shipment is deleted.
type Shipment struct {
	ID              string               `json:"id" bson:"_id,omitempty"`
	TrackingID      string               `json:"tracking_id" bson:"tracking_id"`
	OwnerUserID     string               `json:"owner_user_id" bson:"owner_user_id"`
	Sender          Contact              `json:"sender" bson:"sender"`
	Receiver        Contact              `json:"receiver" bson:"receiver"`
	Origin          string               `json:"origin" bson:"origin"`
	Destination     string               `json:"destination" bson:"destination"`
	Package         PackageDetails       `json:"package_details" bson:"package_details"`
	Status          ShipmentStatus       `json:"status" bson:"status"`
	CurrentLocation string               `json:"current_location" bson:"current_location"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
	StatusHistory   []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}

// DeliveredAt returns the timestamp of the first Delivered history entry, or
// the zero time when the shipment has not been delivered.
func (s *Shipment) DeliveredAt() time.Time {
	for _, entry := range s.StatusHistory {
		if entry.Status == StatusDelivered {
			return entry.Timestamp
		}
	}
	return time.Time{}
}
