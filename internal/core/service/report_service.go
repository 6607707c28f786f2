package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
	"github.com/K-HALID007/shipment-tracking-api/internal/pkg/metrics"
)

// auditEventLimit caps the recent-events list on the audit report.
const auditEventLimit = 20

// dailyBucketMaxDays is the widest window that still buckets per day; wider
// windows bucket per week.
const dailyBucketMaxDays = 31

// profitMargin is the fixed operating-margin assumption applied to the
// financial report.
const profitMargin = 22.5

type ReportService struct {
	shipments ports.ShipmentRepository
	audit     ports.AuditRepository
	users     ports.AuthRepository
	logger    zerolog.Logger
	now       func() time.Time
}

func NewReportService(
	shipments ports.ShipmentRepository,
	audit ports.AuditRepository,
	users ports.AuthRepository,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		shipments: shipments,
		audit:     audit,
		users:     users,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate validates the request, resolves the date window, and folds the
// matching shipment population into the category's summary. Validation
// happens before any store read; a zero-match window yields all-zero
// metrics, not an error.
func (s *ReportService) Generate(ctx context.Context, input ports.GenerateReportInput) (*domain.ReportSummary, error) {
	category, err := domain.ParseReportCategory(input.Category)
	if err != nil {
		return nil, fmt.Errorf("report category %q: %w", input.Category, err)
	}
	window, err := domain.ResolveDateWindow(domain.DateRangePreset(input.Range), s.now(), input.CustomStart, input.CustomEnd)
	if err != nil {
		return nil, fmt.Errorf("date range %q: %w", input.Range, err)
	}

	start := time.Now()
	defer func() {
		metrics.ReportDuration.WithLabelValues(string(category)).Observe(time.Since(start).Seconds())
	}()

	var summary *domain.ReportSummary
	switch category {
	case domain.ReportPerformance:
		summary, err = s.performance(ctx, window)
	case domain.ReportFinancial:
		summary, err = s.financial(ctx, window)
	case domain.ReportOperational:
		summary, err = s.operational(ctx, window)
	case domain.ReportCustomer:
		summary, err = s.customer(ctx, window)
	case domain.ReportAudit:
		summary, err = s.auditReport(ctx, window)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("category", string(category)).Msg("report generation failed")
		return nil, fmt.Errorf("generate %s report: %w", category, err)
	}

	metrics.ReportsGeneratedTotal.WithLabelValues(string(category)).Inc()
	return summary, nil
}

// performance: shipment counts per time bucket, one series per status.
func (s *ReportService) performance(ctx context.Context, window domain.DateWindow) (*domain.ReportSummary, error) {
	shipments, err := s.shipments.List(ctx, ports.ShipmentFilter{Window: window})
	if err != nil {
		return nil, err
	}

	labels, bucketOf := timeBuckets(window)
	series := make(map[domain.ShipmentStatus][]float64, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		series[status] = make([]float64, len(labels))
	}

	var delivered int
	var deliveryDays float64
	for _, sh := range shipments {
		if i := bucketOf(sh.CreatedAt); i >= 0 {
			series[sh.Status][i]++
		}
		if at := sh.DeliveredAt(); !at.IsZero() {
			delivered++
			deliveryDays += at.Sub(sh.CreatedAt).Hours() / 24
		}
	}

	chart := &domain.ChartData{Labels: labels}
	for _, status := range domain.AllStatuses {
		chart.Datasets = append(chart.Datasets, domain.ChartDataset{
			Label: string(status),
			Data:  series[status],
		})
	}

	total := len(shipments)
	return &domain.ReportSummary{
		Category: domain.ReportPerformance,
		Window:   window,
		Summary: map[string]float64{
			"totalShipments":     float64(total),
			"deliveredShipments": float64(delivered),
			"deliveryRate":       percentage(delivered, total),
			"avgDeliveryTime":    average(deliveryDays, delivered),
		},
		Chart: chart,
	}, nil
}

// financial: revenue broken down by package type.
func (s *ReportService) financial(ctx context.Context, window domain.DateWindow) (*domain.ReportSummary, error) {
	shipments, err := s.shipments.List(ctx, ports.ShipmentFilter{Window: window})
	if err != nil {
		return nil, err
	}

	revenueByType := make(map[string]float64, len(domain.PackageTypes))
	var totalRevenue float64
	for _, sh := range shipments {
		r := revenueFor(sh)
		revenueByType[sh.Package.Type] += r
		totalRevenue += r
	}

	chart := &domain.ChartData{
		Labels:   []string{"Standard", "Express", "Fragile", "Oversized"},
		Datasets: []domain.ChartDataset{{Label: "Revenue", Data: make([]float64, len(domain.PackageTypes))}},
	}
	for i, t := range domain.PackageTypes {
		chart.Datasets[0].Data[i] = round2(revenueByType[t])
	}

	return &domain.ReportSummary{
		Category: domain.ReportFinancial,
		Window:   window,
		Summary: map[string]float64{
			"totalRevenue":    round2(totalRevenue),
			"averageRevenue":  round2(mean(totalRevenue, len(shipments))),
			"shipmentsBilled": float64(len(shipments)),
			"profitMargin":    marginIfBilled(len(shipments)),
		},
		Chart: chart,
	}, nil
}

// operational: delivery-time distribution over delivered shipments.
func (s *ReportService) operational(ctx context.Context, window domain.DateWindow) (*domain.ReportSummary, error) {
	shipments, err := s.shipments.List(ctx, ports.ShipmentFilter{Window: window})
	if err != nil {
		return nil, err
	}

	buckets := []string{"Same Day", "1-2 Days", "3-5 Days", "6+ Days"}
	counts := make([]float64, len(buckets))

	var delivered, inTransit int
	var deliveryDays float64
	for _, sh := range shipments {
		switch sh.Status {
		case domain.StatusInTransit, domain.StatusOutForDelivery:
			inTransit++
		}
		at := sh.DeliveredAt()
		if at.IsZero() {
			continue
		}
		delivered++
		days := at.Sub(sh.CreatedAt).Hours() / 24
		deliveryDays += days
		switch {
		case days < 1:
			counts[0]++
		case days < 3:
			counts[1]++
		case days < 6:
			counts[2]++
		default:
			counts[3]++
		}
	}

	return &domain.ReportSummary{
		Category: domain.ReportOperational,
		Window:   window,
		Summary: map[string]float64{
			"deliveredCount":     float64(delivered),
			"inTransitCount":     float64(inTransit),
			"avgDeliveryTime":    average(deliveryDays, delivered),
			"deliveryEfficiency": percentage(delivered, len(shipments)),
		},
		Chart: &domain.ChartData{
			Labels:   buckets,
			Datasets: []domain.ChartDataset{{Label: "Deliveries", Data: counts}},
		},
	}, nil
}

// customer: active versus inactive user population.
func (s *ReportService) customer(ctx context.Context, window domain.DateWindow) (*domain.ReportSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	var total, active, fresh int
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			continue
		}
		total++
		if u.IsActive {
			active++
		}
		if window.Contains(u.CreatedAt) {
			fresh++
		}
	}

	return &domain.ReportSummary{
		Category: domain.ReportCustomer,
		Window:   window,
		Summary: map[string]float64{
			"totalCustomers":  float64(total),
			"activeCustomers": float64(active),
			"newCustomers":    float64(fresh),
			"activeRate":      percentage(active, total),
		},
		Chart: &domain.ChartData{
			Labels:   []string{"Active", "Inactive"},
			Datasets: []domain.ChartDataset{{Label: "Customers", Data: []float64{float64(active), float64(total - active)}}},
		},
	}, nil
}

// auditReport: recent system events, newest first, no chart.
func (s *ReportService) auditReport(ctx context.Context, window domain.DateWindow) (*domain.ReportSummary, error) {
	events, err := s.audit.ListRecent(ctx, window, auditEventLimit)
	if err != nil {
		return nil, err
	}
	counts, err := s.audit.CountByEvent(ctx, window)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return &domain.ReportSummary{
		Category: domain.ReportAudit,
		Window:   window,
		Summary: map[string]float64{
			"totalEvents":      float64(total),
			"shipmentsCreated": float64(counts[domain.AuditShipmentCreated]),
			"statusChanges":    float64(counts[domain.AuditStatusUpdated]),
			"deletions":        float64(counts[domain.AuditShipmentDeleted]),
		},
		RecentEvents: events,
	}, nil
}

// timeBuckets derives the performance chart's X axis from the window: daily
// buckets up to a month, weekly beyond. It returns the labels and a mapper
// from a timestamp to its bucket index (-1 when outside the window).
func timeBuckets(window domain.DateWindow) ([]string, func(time.Time) int) {
	if window.Days() <= dailyBucketMaxDays {
		n := window.Days()
		labels := make([]string, n)
		for i := range labels {
			labels[i] = window.Start.AddDate(0, 0, i).Format("2006-01-02")
		}
		return labels, func(t time.Time) int {
			if !window.Contains(t) {
				return -1
			}
			i := int(t.Sub(window.Start) / (24 * time.Hour))
			if i >= n {
				i = n - 1
			}
			return i
		}
	}

	n := (window.Days() + 6) / 7
	labels := make([]string, n)
	for i := range labels {
		labels[i] = "Week of " + window.Start.AddDate(0, 0, i*7).Format("2006-01-02")
	}
	return labels, func(t time.Time) int {
		if !window.Contains(t) {
			return -1
		}
		i := int(t.Sub(window.Start) / (7 * 24 * time.Hour))
		if i >= n {
			i = n - 1
		}
		return i
	}
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

func average(sum float64, n int) float64 {
	return round1(mean(sum, n))
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func marginIfBilled(n int) float64 {
	if n == 0 {
		return 0
	}
	return profitMargin
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
