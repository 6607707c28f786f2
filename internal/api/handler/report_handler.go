package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
)

const customDateLayout = "2006-01-02"

// ReportHandler handles HTTP requests for report generation.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Generate handles GET /v1/admin/reports. Category and dateRange come from
// query parameters; startDate/endDate are required only for custom ranges.
func (h *ReportHandler) Generate(c echo.Context) error {
	var req generateReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	input := ports.GenerateReportInput{
		Category: req.Category,
		Range:    req.DateRange,
	}
	if req.CustomStart != "" {
		start, err := time.Parse(customDateLayout, req.CustomStart)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "startDate must be YYYY-MM-DD"})
		}
		input.CustomStart = start
	}
	if req.CustomEnd != "" {
		end, err := time.Parse(customDateLayout, req.CustomEnd)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "endDate must be YYYY-MM-DD"})
		}
		input.CustomEnd = end
	}

	report, err := h.service.Generate(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toReportResponse(report))
}

// toReportResponse decorates the raw metric values for display. Metrics are
// emitted in name order so the payload is stable across requests.
func toReportResponse(r *domain.ReportSummary) reportResponse {
	names := make([]string, 0, len(r.Summary))
	for name := range r.Summary {
		names = append(names, name)
	}
	sort.Strings(names)

	metrics := make([]reportMetricResponse, 0, len(names))
	for _, name := range names {
		value := r.Summary[name]
		metrics = append(metrics, reportMetricResponse{
			Name:    name,
			Value:   value,
			Display: FormatMetric(name, value),
		})
	}

	return reportResponse{
		Category: string(r.Category),
		Window: reportWindowResponse{
			Start: r.Window.Start.UTC(),
			End:   r.Window.End.UTC(),
		},
		Summary:      metrics,
		Chart:        r.Chart,
		RecentEvents: r.RecentEvents,
	}
}
