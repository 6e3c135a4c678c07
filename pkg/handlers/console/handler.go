package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/ops-atlas/pkg/adapters"
	"github.com/de-tools/ops-atlas/pkg/export"
	"github.com/de-tools/ops-atlas/pkg/models/api"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/reports"
	svc "github.com/de-tools/ops-atlas/pkg/services/console"
)

const defaultWindowDays = 30

type Handler struct {
	aggregator svc.Aggregator
	windowDays int
}

// NewHandler builds the console handler. windowDays sets the length of
// the default reporting window when a request carries no from/to
// params; non-positive values fall back to 30 days.
func NewHandler(aggregator svc.Aggregator, windowDays int) *Handler {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	return &Handler{aggregator: aggregator, windowDays: windowDays}
}

// Dashboard runs one aggregation cycle and returns the metrics/alerts
// payload. A cycle with failed domains still returns 200: partial data
// carries explicit availability markers instead of failing the request.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	window, err := h.window(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cycle, err := h.aggregator.Run(ctx, principalFrom(r), window)
	if err != nil {
		logger.Warn().Err(err).Msg("dashboard cycle abandoned")
		http.Error(w, "aggregation cancelled", http.StatusServiceUnavailable)
		return
	}

	payload := api.Dashboard{
		CycleID:     cycle.Snapshot.CycleID,
		From:        cycle.Snapshot.Window.From,
		To:          cycle.Snapshot.Window.To,
		GeneratedAt: cycle.Snapshot.TakenAt,
		Domains:     adapters.MapSnapshotStatusToApi(&cycle.Snapshot, cycle.Collected),
		Metrics:     adapters.MapMetricSetToApi(cycle.Metrics),
		Alerts:      adapters.MapAlertsDomainToApi(cycle.Alerts),
	}

	writeJSON(w, logger, payload)
}

// ListReports returns the available report types.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var response []api.ReportTypeInfo
	for _, t := range reports.Titles() {
		response = append(response, api.ReportTypeInfo{Type: string(t.Type), Title: t.Title})
	}
	writeJSON(w, logger, response)
}

// GetReport runs one cycle and returns the composed report document.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	doc, _, ok := h.composeReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, logger, adapters.MapReportDomainToApi(*doc))
}

// ExportReport renders the report document as a downloadable file with
// a deterministic name.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	doc, _, ok := h.composeReport(w, r)
	if !ok {
		return
	}

	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatText
	}

	payload, err := export.Render(doc, format)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Export failure leaves the rest of the cycle's outputs valid.
		logger.Error().Err(err).Str("report", string(doc.Type)).Msg("export rendering failed")
		http.Error(w, "export rendering failed", http.StatusInternalServerError)
		return
	}

	filename := export.Filename(doc.Type, doc.Window, doc.GeneratedAt, format)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(payload); err != nil {
		logger.Error().Err(err).Str("report", string(doc.Type)).Msg("failed to write export")
	}
}

func (h *Handler) composeReport(w http.ResponseWriter, r *http.Request) (*domain.ReportDocument, *svc.Cycle, bool) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	reportType := domain.ReportType(chi.URLParam(r, "reportType"))

	window, err := h.window(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}

	cycle, err := h.aggregator.Run(ctx, principalFrom(r), window)
	if err != nil {
		logger.Warn().Err(err).Msg("report cycle abandoned")
		http.Error(w, "aggregation cancelled", http.StatusServiceUnavailable)
		return nil, nil, false
	}

	doc, err := h.aggregator.Report(cycle, reportType, cycle.Snapshot.TakenAt)
	if err != nil {
		if errors.Is(err, reports.ErrUnknownReportType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, nil, false
		}
		logger.Error().Err(err).Str("report", string(reportType)).Msg("report composition failed")
		http.Error(w, "report composition failed", http.StatusInternalServerError)
		return nil, nil, false
	}
	return &doc, cycle, true
}

// window parses the from/to query params, defaulting to the trailing 30
// days. Dates accept RFC3339 or plain 2006-01-02.
func (h *Handler) window(r *http.Request) (domain.TimeRange, error) {
	now := time.Now().UTC()
	window := domain.TimeRange{From: now.AddDate(0, 0, -h.windowDays), To: now}

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return domain.TimeRange{}, fmt.Errorf("invalid from date %q", raw)
		}
		window.From = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return domain.TimeRange{}, fmt.Errorf("invalid to date %q", raw)
		}
		window.To = t
	}
	if !window.From.Before(window.To) {
		return domain.TimeRange{}, fmt.Errorf("invalid window: from must precede to")
	}
	return window, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// principalFrom reads the caller identity forwarded by the outer
// application gateway. Missing headers yield a full-access principal;
// authentication itself is the gateway's concern.
func principalFrom(r *http.Request) domain.Principal {
	p := domain.Principal{
		User: r.Header.Get("X-User"),
		Role: r.Header.Get("X-Role"),
	}
	if raw := r.Header.Get("X-Domains"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				p.Domains = append(p.Domains, domain.Name(name))
			}
		}
	}
	return p
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
