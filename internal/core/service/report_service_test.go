package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
)

var reportNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestReportService(shipments *stubShipmentRepo, audit *stubAuditRepo, users *stubAuthRepo) *ReportService {
	svc := NewReportService(shipments, audit, users, zerolog.Nop())
	svc.now = func() time.Time { return reportNow }
	return svc
}

// seedShipment inserts a shipment created daysAgo relative to the fixed
// test clock. Delivered shipments get a matching history entry
// deliverDays after creation.
func seedShipment(t *testing.T, repo *stubShipmentRepo, id int, daysAgo int, status domain.ShipmentStatus, pkgType string, weight, deliverDays float64) {
	t.Helper()
	created := reportNow.AddDate(0, 0, -daysAgo)
	s := &domain.Shipment{
		TrackingID:      fmt.Sprintf("TRK-%010d", id),
		OwnerUserID:     "user-1",
		Status:          status,
		CurrentLocation: "Not Updated",
		Package:         domain.PackageDetails{Type: pkgType, Weight: weight},
		CreatedAt:       created,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: created},
		},
	}
	if status == domain.StatusDelivered {
		s.StatusHistory = append(s.StatusHistory, domain.StatusHistoryEntry{
			Status:    domain.StatusDelivered,
			Timestamp: created.Add(time.Duration(deliverDays * 24 * float64(time.Hour))),
		})
	}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("seed shipment: %v", err)
	}
}

func TestGenerateReport_InvalidCategory(t *testing.T) {
	shipments := newStubShipmentRepo()
	audit := &stubAuditRepo{}
	svc := newTestReportService(shipments, audit, newStubAuthRepo())

	_, err := svc.Generate(context.Background(), ports.GenerateReportInput{Category: "foo", Range: "7days"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if shipments.listCalls != 0 || audit.listCalls != 0 {
		t.Fatalf("invalid category must be rejected before any store read")
	}
}

func TestGenerateReport_InvalidRange(t *testing.T) {
	shipments := newStubShipmentRepo()
	svc := newTestReportService(shipments, &stubAuditRepo{}, newStubAuthRepo())

	_, err := svc.Generate(context.Background(), ports.GenerateReportInput{Category: "performance", Range: "14days"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if shipments.listCalls != 0 {
		t.Fatalf("invalid range must be rejected before any store read")
	}
}

func TestGenerateReport_CustomRangeEndBeforeStart(t *testing.T) {
	svc := newTestReportService(newStubShipmentRepo(), &stubAuditRepo{}, newStubAuthRepo())

	_, err := svc.Generate(context.Background(), ports.GenerateReportInput{
		Category:    "performance",
		Range:       "custom",
		CustomStart: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CustomEnd:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPerformanceReport_BucketsSumToTotal(t *testing.T) {
	repo := newStubShipmentRepo()
	for i := 0; i < 12; i++ {
		status := domain.AllStatuses[i%len(domain.AllStatuses)]
		seedShipment(t, repo, i, i*2+1, status, "standard", 1, 2)
	}
	svc := newTestReportService(repo, &stubAuditRepo{}, newStubAuthRepo())

	report, err := svc.Generate(context.Background(), ports.GenerateReportInput{Category: "performance", Range: "30days"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if got := report.Summary["totalShipments"]; got != 12 {
		t.Fatalf("expected 12 total shipments, got %v", got)
	}

	var chartTotal float64
	for _, ds := range report.Chart.Datasets {
		if len(ds.Data) != len(report.Chart.Labels) {
			t.Fatalf("dataset %q length %d does not match %d labels", ds.Label, len(ds.Data), len(report.Chart.Labels))
		}
		for _, v := range ds.Data {
			chartTotal += v
		}
	}
	if chartTotal != 12 {
		t.Fatalf("chart buckets must sum to the total, got %v", chartTotal)
	}

	// 12 shipments cycling through 4 statuses: 3 delivered.
	if got := report.Summary["deliveredShipments"]; got != 3 {
		t.Fatalf("expected 3 delivered, got %v", got)
	}
	if got := report.Summary["deliveryRate"]; got != 25.0 {
		t.Fatalf("expected 25.0 delivery rate, got %v", got)
	}
}

func TestPerformanceReport_EmptyWindowAllZero(t *testing.T) {
	svc := newTestReportService(newStubShipmentRepo(), &stubAuditRepo{}, newStubAuthRepo())

	report, err := svc.Generate(context.Background(), ports.GenerateReportInput{Category: "performance", Range: "7days"})
	if err != nil {
		t.Fatalf("an empty window is not an error: %v", err)
	}
	for name, v := range report.Summary {
		if v != 0 {
			t.Fatalf("expected all-zero metrics, %s = %v", name, v)
		}
	}
	if report.Chart == nil || len(report.Chart.Labels) == 0 {
		t.Fatalf("empty population still gets a chart frame")
	}
	for _, ds := range report.Chart.Datasets {
		for _, v := range ds.Data {
			if v != 0 {
				t.Fatalf("expected zeroed series, got %v in %q", v, ds.Label)
			}
		}
	}
}

func TestFinancialReport_RevenueByType(t *testing.T) {
	repo := newStubShipmentRepo()
	seedShipment(t, repo, 1, 2, domain.StatusPending, "standard", 2, 0)  // 50 + 2*5  = 60
	seedShipment(t, repo, 2, 3, domain.StatusInTransit, "standard", 2, 0) // 60
	seedShipment(t, repo, 3, 4, domain.StatusDelivered, "express", 1, 1)  // 120 + 8 = 128
	svc := newTestReportService(repo, &stubAuditRepo{}, newStubAuthRepo())

	report, err := svc.Generate(context.Background(), ports.GenerateReportInput{Category: "financial", Range: "7days"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if got := report.Summary["totalRevenue"]; got != 248 {
		t.Fatalf("expected 248 total revenue, got %v", got)
	}
	if got := report.Summary["shipmentsBilled"]; got != 3 {
		t.Fatalf("expected 3 billed, got %v", got)
	}
	if got := report.Summary["averageRevenue"]; got != 82.67 {
		t.Fatalf("expected 82.67 average revenue, got %v", got)
	}
	if got := report.Summary["profitMargin"]; got != 22.5 {
		t.Fatalf("expected 22.5 margin, got %v", got)
	}

	// Doughnut slices follow the package type order.
	data := report.Chart.Datasets[0].Data
	if data[0] != 120 || data[1] != 128 || data[2] != 0 || data[3] != 0 {
		t.Fatalf("unexpected revenue slices: %v", data)
	}
}

func TestFinancialReport_NoBillingNoMargin(t *testing.T) {
	svc := newTestReportService(newStubShipmentRepo(), &stubAuditRepo{}, newStubAuthRepo())

	report, err := svc.Generate(context.Background(), ports.GenerateReportInput{Category: "financial", Range: "30days"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got := report.Summary["profitMargin"]; got != 0 {
		t.Fatalf("margin must be 0 with nothing billed, got %v", got)
	}
}

func TestOperationalReport_DeliveryBuckets(t *testing.T) {
	repo := newStubShipmentRepo()
	seedShipment(t, repo, 1, 20, domain.StatusDelivered, "standard", 1, 0.5) // Same Day
	seedShipment(t, repo, 2, 20, domain.StatusDelivered, "standard", 1, 1.5) // 1-2 Days
	seedShipment(t, repo, 3, 20, domain.StatusDelivered, "standard", 1, 4)   // 3-5 Days
	seedShipment(t, repo, 4, 20, domain.StatusDelivered, "standard", 1, 8)   // 6+ Days
	seedShipment(t, repo, 5, 5, domain.StatusInTransit, "standard", 1, 0)
	seedShipment(t, repo, 6, 5, domain.StatusOutForDelivery, "standard", 1, 0)
	svc := newTestReportService(repo, &stubAuditRepo{}, newStubAuthRepo())

	report, err := svc.Generate(context.Background(), ports.GenerateReportInput{Category: "operational", Range: "30days"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	data := report.Chart.Datasets[0].Data
	for i, want := range []float64{1, 1, 1, 1} {
		if data[i] != want {
			t.Fatalf("bucket %d: expected %v, got %v (%v)", i, want, data[i], data)
		}
	}
	if got := report.Summary["deliveredCount"]; got != 4 {
		t.Fatalf("expected 4 delivered, got %v", got)
	}
	if got := report.Summary["inTransitCount"]; got != 2 {
		t.Fatalf("expected 2 in transit, got %v", got)
	}
	if got := report.Summary["deliveryEfficiency"]; got != 66.7 {
		t.Fatalf("expected 66.7 efficiency, got %v", got)
	}
}

func TestCustomerReport_ExcludesAdmins(t *testing.T) {
	users := newStubAuthRepo()
	seedUser := func(name, role string, active bool, daysAgo int) {
		_, err := users.Create(context.Background(), &domain.User{
			Name:      name,
			Email:     name + "@example.com",
			Role:      role,
			IsActive:  active,
			CreatedAt: reportNow.AddDate(0, 0, -daysAgo),
		})
		if err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	seedUser("root", domain.RoleAdmin, true, 100)
	seedUser("alice", domain.RoleUser, true, 3)
	seedUser("bob", domain.RoleUser, true, 40)
	seedUser("carol", domain.RoleUser, false, 40)

	svc := newTestReportService(newStubShipmentRepo(), &stubAuditRepo{}, users)

	report, err := svc.Generate(context.Background(), ports.GenerateReportInput{Category: "customer", Range: "7days"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if got := report.Summary["totalCustomers"]; got != 3 {
		t.Fatalf("admins must be excluded, got %v customers", got)
	}
	if got := report.Summary["activeCustomers"]; got != 2 {
		t.Fatalf("expected 2 active, got %v", got)
	}
	if got := report.Summary["newCustomers"]; got != 1 {
		t.Fatalf("expected 1 new customer in window, got %v", got)
	}
	if got := report.Summary["activeRate"]; got != 66.7 {
		t.Fatalf("expected 66.7 active rate, got %v", got)
	}
}

func TestAuditReport_CountsAndRecency(t *testing.T) {
	audit := &stubAuditRepo{}
	add := func(event string, minutesAgo int) {
		_ = audit.Insert(context.Background(), &domain.AuditEvent{
			TrackingID: "TRK-0000000001",
			Event:      event,
			User:       "admin@example.com",
			Time:       reportNow.Add(-time.Duration(minutesAgo) * time.Minute),
		})
	}
	add(domain.AuditShipmentCreated, 30)
	add(domain.AuditStatusUpdated, 20)
	add(domain.AuditStatusUpdated, 10)
	add(domain.AuditShipmentDeleted, 5)

	svc := newTestReportService(newStubShipmentRepo(), audit, newStubAuthRepo())

	report, err := svc.Generate(context.Background(), ports.GenerateReportInput{Category: "audit", Range: "7days"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if got := report.Summary["totalEvents"]; got != 4 {
		t.Fatalf("expected 4 events, got %v", got)
	}
	if got := report.Summary["statusChanges"]; got != 2 {
		t.Fatalf("expected 2 status changes, got %v", got)
	}
	if report.Chart != nil {
		t.Fatalf("audit report has no chart")
	}
	if len(report.RecentEvents) != 4 {
		t.Fatalf("expected 4 recent events, got %d", len(report.RecentEvents))
	}
	for i := 1; i < len(report.RecentEvents); i++ {
		if report.RecentEvents[i].Time.After(report.RecentEvents[i-1].Time) {
			t.Fatalf("recent events must be newest first")
		}
	}
}

func TestGenerateReport_Deterministic(t *testing.T) {
	repo := newStubShipmentRepo()
	for i := 0; i < 5; i++ {
		seedShipment(t, repo, i, i+1, domain.StatusPending, "standard", 1, 0)
	}
	svc := newTestReportService(repo, &stubAuditRepo{}, newStubAuthRepo())

	first, err := svc.Generate(context.Background(), ports.GenerateReportInput{Category: "performance", Range: "90days"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	second, err := svc.Generate(context.Background(), ports.GenerateReportInput{Category: "performance", Range: "90days"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(first.Chart.Labels) != len(second.Chart.Labels) {
		t.Fatalf("label sets differ between identical requests")
	}
	for i := range first.Chart.Labels {
		if first.Chart.Labels[i] != second.Chart.Labels[i] {
			t.Fatalf("label %d differs: %q vs %q", i, first.Chart.Labels[i], second.Chart.Labels[i])
		}
	}
	for name, v := range first.Summary {
		if second.Summary[name] != v {
			t.Fatalf("metric %s differs: %v vs %v", name, v, second.Summary[name])
		}
	}
}

func TestGenerateReport_CustomRangeIncludesEndDate(t *testing.T) {
	repo := newStubShipmentRepo()
	// Created at 18:00 on the custom end date.
	created := time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC)
	if err := repo.Create(context.Background(), &domain.Shipment{
		TrackingID:  "TRK-0000000042",
		OwnerUserID: "user-1",
		Status:      domain.StatusPending,
		Package:     domain.PackageDetails{Type: "standard", Weight: 1},
		CreatedAt:   created,
	}); err != nil {
		t.Fatalf("seed shipment: %v", err)
	}
	svc := newTestReportService(repo, &stubAuditRepo{}, newStubAuthRepo())

	report, err := svc.Generate(context.Background(), ports.GenerateReportInput{
		Category:    "performance",
		Range:       "custom",
		CustomStart: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		CustomEnd:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got := report.Summary["totalShipments"]; got != 1 {
		t.Fatalf("end date must be inclusive, got %v shipments", got)
	}
}
