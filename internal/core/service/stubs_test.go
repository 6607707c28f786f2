package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
)

// --- shipment repository stub ---

type stubShipmentRepo struct {
	shipments map[string]*domain.Shipment
	// dupesRemaining makes the next N Create calls fail with a duplicate
	// tracking id, exercising the allocation retry loop.
	dupesRemaining int
	createCalls    int
	listCalls      int
}

func newStubShipmentRepo() *stubShipmentRepo {
	return &stubShipmentRepo{shipments: make(map[string]*domain.Shipment)}
}

func cloneShipment(s *domain.Shipment) *domain.Shipment {
	if s == nil {
		return nil
	}
	clone := *s
	clone.StatusHistory = append([]domain.StatusHistoryEntry(nil), s.StatusHistory...)
	return &clone
}

func (r *stubShipmentRepo) Create(_ context.Context, s *domain.Shipment) error {
	r.createCalls++
	if r.dupesRemaining > 0 {
		r.dupesRemaining--
		return domain.ErrDuplicateTrackingID
	}
	if _, exists := r.shipments[s.TrackingID]; exists {
		return domain.ErrDuplicateTrackingID
	}
	copy := cloneShipment(s)
	if copy.ID == "" {
		copy.ID = "id-" + strconv.Itoa(len(r.shipments)+1)
	}
	r.shipments[copy.TrackingID] = copy
	return nil
}

func (r *stubShipmentRepo) FindByTrackingID(_ context.Context, trackingID, ownerUserID string) (*domain.Shipment, error) {
	s, ok := r.shipments[trackingID]
	if !ok || (ownerUserID != "" && s.OwnerUserID != ownerUserID) {
		return nil, domain.ErrShipmentNotFound
	}
	return cloneShipment(s), nil
}

func (r *stubShipmentRepo) List(_ context.Context, filter ports.ShipmentFilter) ([]*domain.Shipment, error) {
	r.listCalls++
	var out []*domain.Shipment
	for _, s := range r.shipments {
		if filter.OwnerUserID != "" && s.OwnerUserID != filter.OwnerUserID {
			continue
		}
		if filter.Status != "" && string(s.Status) != filter.Status {
			continue
		}
		if !filter.Window.Start.IsZero() && !filter.Window.Contains(s.CreatedAt) {
			continue
		}
		out = append(out, cloneShipment(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.SortDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *stubShipmentRepo) UpdateStatus(_ context.Context, trackingID string, status domain.ShipmentStatus, location string, ts time.Time) (*domain.Shipment, error) {
	s, ok := r.shipments[trackingID]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	s.Status = status
	s.CurrentLocation = location
	s.StatusHistory = append(s.StatusHistory, domain.StatusHistoryEntry{
		Status:    status,
		Location:  location,
		Timestamp: ts,
	})
	return cloneShipment(s), nil
}

func (r *stubShipmentRepo) Delete(_ context.Context, trackingID, ownerUserID string) error {
	s, ok := r.shipments[trackingID]
	if !ok || (ownerUserID != "" && s.OwnerUserID != ownerUserID) {
		return domain.ErrShipmentNotFound
	}
	delete(r.shipments, trackingID)
	return nil
}

func (r *stubShipmentRepo) CountByStatus(_ context.Context, window domain.DateWindow) (map[domain.ShipmentStatus]int64, error) {
	counts := make(map[domain.ShipmentStatus]int64, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		counts[status] = 0
	}
	for _, s := range r.shipments {
		if !window.Start.IsZero() && !window.Contains(s.CreatedAt) {
			continue
		}
		counts[s.Status]++
	}
	return counts, nil
}

// --- audit stubs ---

type stubAuditRepo struct {
	events    []domain.AuditEvent
	listCalls int
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuditEvent) error {
	r.events = append(r.events, *event)
	return nil
}

func (r *stubAuditRepo) ListRecent(_ context.Context, window domain.DateWindow, limit int) ([]domain.AuditEvent, error) {
	r.listCalls++
	var out []domain.AuditEvent
	for _, e := range r.events {
		if !window.Start.IsZero() && !window.Contains(e.Time) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubAuditRepo) CountByEvent(_ context.Context, window domain.DateWindow) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, e := range r.events {
		if !window.Start.IsZero() && !window.Contains(e.Time) {
			continue
		}
		counts[e.Event]++
	}
	return counts, nil
}

// stubRecorder captures fire-and-forget audit events synchronously.
type stubRecorder struct {
	events []domain.AuditEvent
}

func (r *stubRecorder) Record(event domain.AuditEvent) {
	r.events = append(r.events, event)
}

// --- user repository stub ---

type stubAuthRepo struct {
	users     map[string]*domain.User
	nextID    int
	listCalls int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = "user-" + strconv.Itoa(r.nextID)
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) List(_ context.Context) ([]*domain.User, error) {
	r.listCalls++
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAuthRepo) SetActive(_ context.Context, id string, active bool) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = active
	return cloneUser(u), nil
}

func (r *stubAuthRepo) SetRole(_ context.Context, id, role string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubAuthRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// alwaysVisibleProbe satisfies the read path without any propagation delay.
type alwaysVisibleProbe struct{}

func (alwaysVisibleProbe) Exists(_ context.Context, _ string) (bool, error) { return true, nil }

// neverVisibleProbe simulates a read path that never catches up.
type neverVisibleProbe struct{}

func (neverVisibleProbe) Exists(_ context.Context, _ string) (bool, error) { return false, nil }
