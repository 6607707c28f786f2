package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for shipment operations.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /v1/shipments.
//
// The write is acknowledged only after the read-path visibility check. When
// the check exhausts its budget the shipment still exists and its tracking
// id is returned with 202 and verified=false; the caller re-polls via the
// verify endpoint rather than recreating.
func (h *ShipmentHandler) Create(c echo.Context) error {
	userID, email, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.CreateShipment(c.Request().Context(), toCreateInput(req, userID, email))
	if err != nil {
		if errors.Is(err, domain.ErrTrackingNotVisible) && result != nil {
			return c.JSON(http.StatusAccepted, toCreateResponse(result, false))
		}
		return err
	}

	return c.JSON(http.StatusCreated, toCreateResponse(result, true))
}

// Get handles GET /v1/shipments/:tracking_id. Non-admin callers only see
// their own shipments.
func (h *ShipmentHandler) Get(c echo.Context) error {
	userID, _, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ownerScope := userID
	if role == domain.RoleAdmin {
		ownerScope = ""
	}

	shipment, err := h.service.GetShipment(c.Request().Context(), ports.GetShipmentInput{
		TrackingID:  c.Param("tracking_id"),
		OwnerUserID: ownerScope,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// ListMine handles GET /v1/shipments and returns the caller's shipments,
// newest first.
func (h *ShipmentHandler) ListMine(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	shipments, err := h.service.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(shipments))
}

// UpdateStatus handles PATCH /v1/admin/shipments/:tracking_id/status.
// Status values are matched case-insensitively; re-asserting the current
// status is a no-op that still succeeds.
func (h *ShipmentHandler) UpdateStatus(c echo.Context) error {
	_, email, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	shipment, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		TrackingID: c.Param("tracking_id"),
		Status:     req.Status,
		Location:   req.CurrentLocation,
		ActorEmail: email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// Delete handles DELETE /v1/shipments/:tracking_id. The tracking id stays
// burned after deletion.
func (h *ShipmentHandler) Delete(c echo.Context) error {
	userID, email, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ownerScope := userID
	if role == domain.RoleAdmin {
		ownerScope = ""
	}

	err = h.service.DeleteShipment(c.Request().Context(), ports.DeleteShipmentInput{
		TrackingID:  c.Param("tracking_id"),
		OwnerUserID: ownerScope,
		ActorEmail:  email,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Verify handles GET /v1/shipments/:tracking_id/verify and re-runs the
// read-path visibility check for an already-created shipment.
func (h *ShipmentHandler) Verify(c echo.Context) error {
	if _, _, _, err := ctxClaims(c); err != nil {
		return err
	}

	trackingID := c.Param("tracking_id")
	visible, err := h.service.VerifyTracking(c.Request().Context(), trackingID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, verifyTrackingResponse{
		TrackingID: trackingID,
		Visible:    visible,
	})
}
