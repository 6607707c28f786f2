package ports

import (
	"context"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
)

// DashboardStats is the at-a-glance admin view.
type DashboardStats struct {
	TotalShipments int64                            `json:"total_shipments"`
	ByStatus       map[domain.ShipmentStatus]int64  `json:"by_status"`
	TotalUsers     int64                            `json:"total_users"`
	ActiveUsers    int64                            `json:"active_users"`
}

// RevenuePoint is one bucket of the revenue time series.
type RevenuePoint struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

// AdminService covers the administrative dashboard operations.
type AdminService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	RecentShipments(ctx context.Context, limit int) ([]*domain.Shipment, error)
	// RevenueSeries buckets estimated revenue by week or month over the
	// trailing year. timeframe is "weekly" or "monthly".
	RevenueSeries(ctx context.Context, timeframe string) ([]RevenuePoint, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	SetUserActive(ctx context.Context, userID string, active bool) (*domain.User, error)
	SetUserRole(ctx context.Context, userID, role string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}
