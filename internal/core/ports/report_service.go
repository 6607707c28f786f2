package ports

import (
	"context"
	"time"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
)

// GenerateReportInput carries the raw report request. Category and Range are
// caller-supplied strings validated before any store read.
type GenerateReportInput struct {
	Category    string
	Range       string
	CustomStart time.Time // required when Range is "custom"
	CustomEnd   time.Time
}

// ReportService produces summary views over the shipment population.
type ReportService interface {
	Generate(ctx context.Context, input GenerateReportInput) (*domain.ReportSummary, error)
}
