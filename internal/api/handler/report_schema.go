package handler

import (
	"time"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
)

type generateReportRequest struct {
	Category    string `json:"category"  query:"category"  validate:"required"`
	DateRange   string `json:"dateRange" query:"dateRange" validate:"required"`
	CustomStart string `json:"startDate" query:"startDate"` // YYYY-MM-DD, custom range only
	CustomEnd   string `json:"endDate"   query:"endDate"`
}

type reportWindowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type reportMetricResponse struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	// Display is the formatted value with its inferred unit.
	Display string `json:"display"`
}

type reportResponse struct {
	Category     string                 `json:"category"`
	Window       reportWindowResponse   `json:"window"`
	Summary      []reportMetricResponse `json:"summary"`
	Chart        *domain.ChartData      `json:"chart,omitempty"`
	RecentEvents []domain.AuditEvent    `json:"recentEvents,omitempty"`
}
