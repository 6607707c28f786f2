package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type contactRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type addressRequest struct {
	Street     string `json:"street"      validate:"required"`
	City       string `json:"city"        validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"     validate:"required"`
}

type dimensionsRequest struct {
	Length float64 `json:"length" validate:"omitempty,gt=0"`
	Width  float64 `json:"width"  validate:"omitempty,gt=0"`
	Height float64 `json:"height" validate:"omitempty,gt=0"`
}

type packageRequest struct {
	Type                string            `json:"type"       validate:"required"`
	Weight              float64           `json:"weight"     validate:"required,gt=0"`
	Dimensions          dimensionsRequest `json:"dimensions"`
	Description         string            `json:"description"`
	SpecialInstructions string            `json:"special_instructions"`
}

type createShipmentRequest struct {
	Sender      contactRequest `json:"sender"      validate:"required"`
	Receiver    contactRequest `json:"receiver"    validate:"required"`
	Origin      addressRequest `json:"origin"      validate:"required"`
	Destination addressRequest `json:"destination" validate:"required"`
	Package     packageRequest `json:"package"     validate:"required"`
}

type updateStatusRequest struct {
	Status          string `json:"status" validate:"required"`
	CurrentLocation string `json:"currentLocation"`
}

// --- Response types ---
//
// Response-only types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes.

type createShipmentResponse struct {
	TrackingID      string    `json:"trackingId"`
	Status          string    `json:"status"`
	CurrentLocation string    `json:"currentLocation"`
	CreatedAt       time.Time `json:"createdAt"`
	// Verified reports whether the tracking id was observable on the read
	// path before the response was released.
	Verified bool `json:"verified"`
}

type contactResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type dimensionsResponse struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type packageResponse struct {
	Type                string             `json:"type"`
	Weight              float64            `json:"weight"`
	Dimensions          dimensionsResponse `json:"dimensions"`
	Description         string             `json:"description,omitempty"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
}

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type shipmentResponse struct {
	TrackingID      string                      `json:"trackingId"`
	Status          string                      `json:"status"`
	CurrentLocation string                      `json:"currentLocation"`
	Sender          contactResponse             `json:"sender"`
	Receiver        contactResponse             `json:"receiver"`
	Origin          string                      `json:"origin"`
	Destination     string                      `json:"destination"`
	Package         packageResponse             `json:"package"`
	CreatedAt       time.Time                   `json:"createdAt"`
	StatusHistory   []statusHistoryItemResponse `json:"statusHistory"`
}

type listShipmentsResponse struct {
	Data  []shipmentResponse `json:"data"`
	Total int                `json:"total"`
}

type verifyTrackingResponse struct {
	TrackingID string `json:"trackingId"`
	Visible    bool   `json:"visible"`
}
