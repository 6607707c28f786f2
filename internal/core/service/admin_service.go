package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
)

const defaultRecentLimit = 10

type AdminService struct {
	shipments ports.ShipmentRepository
	users     ports.AuthRepository
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAdminService(shipments ports.ShipmentRepository, users ports.AuthRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{shipments: shipments, users: users, logger: logger, now: time.Now}
}

// DashboardStats aggregates the headline numbers for the admin dashboard.
func (s *AdminService) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	byStatus, err := s.shipments.CountByStatus(ctx, domain.DateWindow{})
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	var active int64
	for _, u := range users {
		if u.IsActive {
			active++
		}
	}

	return &ports.DashboardStats{
		TotalShipments: total,
		ByStatus:       byStatus,
		TotalUsers:     int64(len(users)),
		ActiveUsers:    active,
	}, nil
}

// RecentShipments returns the newest shipments across all owners.
func (s *AdminService) RecentShipments(ctx context.Context, limit int) ([]*domain.Shipment, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.shipments.List(ctx, ports.ShipmentFilter{Limit: limit, SortDesc: true})
}

// RevenueSeries buckets estimated revenue over the trailing year.
func (s *AdminService) RevenueSeries(ctx context.Context, timeframe string) ([]ports.RevenuePoint, error) {
	var bucket time.Duration
	var label func(time.Time) string
	switch timeframe {
	case "weekly":
		bucket = 7 * 24 * time.Hour
		label = func(t time.Time) string { return "Week of " + t.Format("2006-01-02") }
	case "monthly", "":
		bucket = 0 // calendar months
		label = func(t time.Time) string { return t.Format("Jan 2006") }
	default:
		return nil, fmt.Errorf("timeframe %q: %w", timeframe, domain.ErrValidation)
	}

	now := s.now().UTC()
	window := domain.DateWindow{Start: now.AddDate(-1, 0, 0), End: now}
	shipments, err := s.shipments.List(ctx, ports.ShipmentFilter{Window: window})
	if err != nil {
		return nil, fmt.Errorf("revenue series: %w", err)
	}

	if bucket > 0 {
		return weeklyRevenue(window, shipments, label), nil
	}
	return monthlyRevenue(window, shipments, label), nil
}

func weeklyRevenue(window domain.DateWindow, shipments []*domain.Shipment, label func(time.Time) string) []ports.RevenuePoint {
	n := (window.Days() + 6) / 7
	points := make([]ports.RevenuePoint, n)
	for i := range points {
		points[i].Label = label(window.Start.AddDate(0, 0, i*7))
	}
	for _, sh := range shipments {
		i := int(sh.CreatedAt.Sub(window.Start) / (7 * 24 * time.Hour))
		if i < 0 || i >= n {
			continue
		}
		points[i].Revenue = round2(points[i].Revenue + revenueFor(sh))
	}
	return points
}

func monthlyRevenue(window domain.DateWindow, shipments []*domain.Shipment, label func(time.Time) string) []ports.RevenuePoint {
	type ym struct{ year int; month time.Month }
	index := make(map[ym]int)
	var points []ports.RevenuePoint
	for t := time.Date(window.Start.Year(), window.Start.Month(), 1, 0, 0, 0, 0, time.UTC); t.Before(window.End); t = t.AddDate(0, 1, 0) {
		index[ym{t.Year(), t.Month()}] = len(points)
		points = append(points, ports.RevenuePoint{Label: label(t)})
	}
	for _, sh := range shipments {
		if i, ok := index[ym{sh.CreatedAt.Year(), sh.CreatedAt.Month()}]; ok {
			points[i].Revenue = round2(points[i].Revenue + revenueFor(sh))
		}
	}
	return points
}

// ListUsers returns every registered user.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// SetUserActive toggles an account's active flag.
func (s *AdminService) SetUserActive(ctx context.Context, userID string, active bool) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrValidation
	}
	user, err := s.users.SetActive(ctx, userID, active)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Bool("active", active).Msg("user active flag updated")
	return user, nil
}

// SetUserRole changes an account's role.
func (s *AdminService) SetUserRole(ctx context.Context, userID, role string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrValidation
	}
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, fmt.Errorf("role %q: %w", role, domain.ErrValidation)
	}
	user, err := s.users.SetRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("role", role).Msg("user role updated")
	return user, nil
}

// DeleteUser removes an account.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrValidation
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}
