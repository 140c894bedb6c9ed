package http

import (
	"ConteudoOH-Backend/internal/analytics"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalyticsHandler отчеты по кликам и конверсиям
type AnalyticsHandler struct {
	aggregator *analytics.Aggregator
	log        *zap.Logger
}

func NewAnalyticsHandler(aggregator *analytics.Aggregator, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		aggregator: aggregator,
		log:        log,
	}
}

// LinkAnalytics сводный отчет по кликам
//
//	@Summary		Click analytics
//	@Description	Invalid dates are ignored; end_date includes the whole day
//	@Tags			Analytics
//	@Produce		json
//	@Security		BearerAuth
//	@Param			ponto_dooh	query		string	false	"Display point"
//	@Param			campanha	query		string	false	"Campaign"
//	@Param			link_id		query		int		false	"Link ID"
//	@Param			start_date	query		string	false	"YYYY-MM-DD"
//	@Param			end_date	query		string	false	"YYYY-MM-DD"
//	@Success		200			{object}	analytics.Report
//	@Failure		400			{object}	ErrorResponse
//	@Router			/api/analytics [get]
func (h *AnalyticsHandler) LinkAnalytics(w http.ResponseWriter, r *http.Request) {
	filter, err := analytics.FilterFromQuery(r.URL.Query(), h.log)
	if err != nil {
		writeError(w, h.log, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.aggregator.LinkAnalytics(r.Context(), filter)
	if err != nil {
		writeDomainError(w, h.log, err, "link analytics")
		return
	}

	writeJSON(w, h.log, http.StatusOK, report)
}

// LinkSpecificAnalytics отчет по одной ссылке
//
//	@Summary		Analytics of one link
//	@Tags			Analytics
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		int		true	"Link ID"
//	@Param			start_date	query		string	false	"YYYY-MM-DD"
//	@Param			end_date	query		string	false	"YYYY-MM-DD"
//	@Success		200			{object}	analytics.LinkReport
//	@Failure		404			{object}	ErrorResponse
//	@Router			/api/analytics/link/{id} [get]
func (h *AnalyticsHandler) LinkSpecificAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, h.log, "Invalid link id", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	start, end := analytics.ParseDateRange(q.Get("start_date"), q.Get("end_date"), h.log)

	report, err := h.aggregator.LinkSpecificAnalytics(r.Context(), id, start, end)
	if err != nil {
		writeDomainError(w, h.log, err, "link specific analytics")
		return
	}

	writeJSON(w, h.log, http.StatusOK, report)
}

// ConversionMetrics метрики вовлеченности и конверсий
//
//	@Summary		Conversion metrics
//	@Tags			Analytics
//	@Produce		json
//	@Security		BearerAuth
//	@Param			link_id		query		int		false	"Link ID"
//	@Param			click_id	query		int		false	"Click ID"
//	@Param			start_date	query		string	false	"YYYY-MM-DD"
//	@Param			end_date	query		string	false	"YYYY-MM-DD"
//	@Success		200			{object}	analytics.ConversionReport
//	@Failure		400			{object}	ErrorResponse
//	@Router			/api/analytics/conversions [get]
func (h *AnalyticsHandler) ConversionMetrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter analytics.ConversionFilter
	var err error
	if filter.LinkID, err = optionalID(q.Get("link_id")); err != nil {
		writeError(w, h.log, "link_id must be an integer", http.StatusBadRequest)
		return
	}
	if filter.ClickID, err = optionalID(q.Get("click_id")); err != nil {
		writeError(w, h.log, "click_id must be an integer", http.StatusBadRequest)
		return
	}
	filter.Start, filter.End = analytics.ParseDateRange(q.Get("start_date"), q.Get("end_date"), h.log)

	report, err := h.aggregator.ConversionMetrics(r.Context(), filter)
	if err != nil {
		writeDomainError(w, h.log, err, "conversion metrics")
		return
	}

	writeJSON(w, h.log, http.StatusOK, report)
}

// Export выгрузка кликов в Excel
//
//	@Summary		Export clicks as XLSX
//	@Tags			Analytics
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Security		BearerAuth
//	@Param			ponto_dooh	query		string	false	"Display point"
//	@Param			campanha	query		string	false	"Campaign"
//	@Param			link_id		query		int		false	"Link ID"
//	@Param			start_date	query		string	false	"YYYY-MM-DD"
//	@Param			end_date	query		string	false	"YYYY-MM-DD"
//	@Success		200			{file}		file
//	@Failure		400			{object}	ErrorResponse
//	@Router			/api/analytics/export [get]
func (h *AnalyticsHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := analytics.FilterFromQuery(r.URL.Query(), h.log)
	if err != nil {
		writeError(w, h.log, err.Error(), http.StatusBadRequest)
		return
	}

	filename, body, err := h.aggregator.ExportXLSX(r.Context(), filter)
	if err != nil {
		writeDomainError(w, h.log, err, "analytics export")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.log.Warn("failed to write export", zap.Error(err))
	}
}

func optionalID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
