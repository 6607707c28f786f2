package domain

import "time"

// ReportCategory is the closed set of analytical lenses a report can apply
// to the shipment population. Adding a category means extending this enum
// and the aggregator's switch — dispatch is never string-keyed downstream.
type ReportCategory string

const (
	ReportPerformance ReportCategory = "performance"
	ReportFinancial   ReportCategory = "financial"
	ReportOperational ReportCategory = "operational"
	ReportCustomer    ReportCategory = "customer"
	ReportAudit       ReportCategory = "audit"
)

// ParseReportCategory validates a caller-supplied category.
func ParseReportCategory(s string) (ReportCategory, error) {
	switch ReportCategory(s) {
	case ReportPerformance, ReportFinancial, ReportOperational, ReportCustomer, ReportAudit:
		return ReportCategory(s), nil
	}
	return "", ErrValidation
}

// DateRangePreset selects the report window.
type DateRangePreset string

const (
	Range7Days  DateRangePreset = "7days"
	Range30Days DateRangePreset = "30days"
	Range90Days DateRangePreset = "90days"
	Range1Year  DateRangePreset = "1year"
	RangeCustom DateRangePreset = "custom"
)

// DateWindow is a resolved half-open [Start, End) instant range.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Days is the window width in whole days, rounded up.
func (w DateWindow) Days() int {
	d := w.End.Sub(w.Start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// ResolveDateWindow maps a preset to a concrete window ending at now.
// Custom ranges are normalised to calendar days in UTC: the window runs from
// 00:00 on the start date to 00:00 the day after the end date, so the end
// date is included while the range stays half-open as instants.
func ResolveDateWindow(preset DateRangePreset, now time.Time, customStart, customEnd time.Time) (DateWindow, error) {
	now = now.UTC()
	switch preset {
	case Range7Days:
		return DateWindow{Start: now.AddDate(0, 0, -7), End: now}, nil
	case Range30Days:
		return DateWindow{Start: now.AddDate(0, 0, -30), End: now}, nil
	case Range90Days:
		return DateWindow{Start: now.AddDate(0, 0, -90), End: now}, nil
	case Range1Year:
		return DateWindow{Start: now.AddDate(-1, 0, 0), End: now}, nil
	case RangeCustom:
		if customStart.IsZero() || customEnd.IsZero() || customEnd.Before(customStart) {
			return DateWindow{}, ErrValidation
		}
		start := truncateToDay(customStart)
		end := truncateToDay(customEnd).AddDate(0, 0, 1)
		return DateWindow{Start: start, End: end}, nil
	}
	return DateWindow{}, ErrValidation
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ChartDataset is a single labelled series of numeric values.
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ChartData is the chart-ready shape the aggregator emits: categorical or
// time buckets on the X axis, one or more datasets of values.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// AuditEventKind classifies audit trail entries.
const (
	AuditShipmentCreated = "Shipment Created"
	AuditStatusUpdated   = "Status Updated"
	AuditShipmentDeleted = "Shipment Deleted"
)

// AuditEvent is one entry in the system audit trail.
type AuditEvent struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	TrackingID string    `json:"tracking_id" bson:"tracking_id"`
	Event      string    `json:"event" bson:"event"`
	User       string    `json:"user" bson:"user"`
	Status     string    `json:"status" bson:"status"`
	Time       time.Time `json:"time" bson:"time"`
}

// ReportSummary is the derived, non-persisted view a report request yields.
// Summary maps metric names to raw numeric values; unit decoration is a
// presentation concern applied at the boundary. Chart is nil for the audit
// category, RecentEvents is populated only for it.
type ReportSummary struct {
	Category     ReportCategory     `json:"category"`
	Window       DateWindow         `json:"window"`
	Summary      map[string]float64 `json:"summary"`
	Chart        *ChartData         `json:"chart,omitempty"`
	RecentEvents []AuditEvent       `json:"recent_events,omitempty"`
}
