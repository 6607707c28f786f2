package handler

import (
	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createShipmentRequest, userID, email string) ports.CreateShipmentInput {
	return ports.CreateShipmentInput{
		OwnerUserID: userID,
		OwnerEmail:  email,
		Sender:      toContactInput(req.Sender),
		Receiver:    toContactInput(req.Receiver),
		Origin:      toAddressInput(req.Origin),
		Destination: toAddressInput(req.Destination),
		Package: ports.PackageInput{
			Type:   req.Package.Type,
			Weight: req.Package.Weight,
			Dimensions: ports.DimensionsInput{
				Length: req.Package.Dimensions.Length,
				Width:  req.Package.Dimensions.Width,
				Height: req.Package.Dimensions.Height,
			},
			Description:         req.Package.Description,
			SpecialInstructions: req.Package.SpecialInstructions,
		},
	}
}

func toContactInput(c contactRequest) ports.ContactInput {
	return ports.ContactInput{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func toAddressInput(a addressRequest) ports.AddressInput {
	return ports.AddressInput{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// --- Service result → HTTP response ---

func toCreateResponse(r *ports.CreateShipmentResult, verified bool) createShipmentResponse {
	return createShipmentResponse{
		TrackingID:      r.TrackingID,
		Status:          r.Status,
		CurrentLocation: r.CurrentLocation,
		CreatedAt:       r.CreatedAt.UTC(),
		Verified:        verified,
	}
}

func toShipmentResponse(s *domain.Shipment) shipmentResponse {
	return shipmentResponse{
		TrackingID:      s.TrackingID,
		Status:          string(s.Status),
		CurrentLocation: s.CurrentLocation,
		Sender:          toContactResponse(s.Sender),
		Receiver:        toContactResponse(s.Receiver),
		Origin:          s.Origin,
		Destination:     s.Destination,
		Package: packageResponse{
			Type:   s.Package.Type,
			Weight: s.Package.Weight,
			Dimensions: dimensionsResponse{
				Length: s.Package.Dimensions.Length,
				Width:  s.Package.Dimensions.Width,
				Height: s.Package.Dimensions.Height,
			},
			Description:         s.Package.Description,
			SpecialInstructions: s.Package.SpecialInstructions,
		},
		CreatedAt:     s.CreatedAt.UTC(),
		StatusHistory: toStatusHistoryResponse(s.StatusHistory),
	}
}

func toContactResponse(c domain.Contact) contactResponse {
	return contactResponse{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func toStatusHistoryResponse(items []domain.StatusHistoryEntry) []statusHistoryItemResponse {
	out := make([]statusHistoryItemResponse, len(items))
	for i, item := range items {
		out[i] = statusHistoryItemResponse{
			Status:    string(item.Status),
			Location:  item.Location,
			Timestamp: item.Timestamp.UTC(),
		}
	}
	return out
}

func toListResponse(items []*domain.Shipment) listShipmentsResponse {
	data := make([]shipmentResponse, len(items))
	for i, s := range items {
		data[i] = toShipmentResponse(s)
	}
	return listShipmentsResponse{Data: data, Total: len(data)}
}
