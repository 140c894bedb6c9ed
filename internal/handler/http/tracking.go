package http

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// TrackingHandler принимает события конверсии с landing страниц
type TrackingHandler struct {
	events *service.EventService
	log    *zap.Logger
}

func NewTrackingHandler(events *service.EventService, log *zap.Logger) *TrackingHandler {
	return &TrackingHandler{
		events: events,
		log:    log,
	}
}

// TrackEventRequest структура события конверсии
type TrackEventRequest struct {
	ClickID    int64           `json:"click_id" validate:"required,gt=0"`
	EventType  string          `json:"event_type" validate:"required"`
	EventValue json.RawMessage `json:"event_value,omitempty" swaggertype:"object"`
}

// TrackEventResponse структура ответа на событие
type TrackEventResponse struct {
	Success bool                    `json:"success"`
	Event   *domain.ConversionEvent `json:"event"`
}

// TrackEvent записывает событие конверсии для клика
//
//	@Summary		Record a conversion event
//	@Description	event_type is one of pageview, scroll, cta_click, whatsapp, form, download, call, purchase
//	@Tags			Tracking
//	@Accept			json
//	@Produce		json
//	@Param			request	body		TrackEventRequest	true	"Event"
//	@Success		201		{object}	TrackEventResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid event type or payload"
//	@Failure		404		{object}	ErrorResponse	"Click not found"
//	@Router			/api/tracking/event [post]
func (h *TrackingHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var req TrackEventRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Debug("invalid tracking event request", zap.Error(err))
		writeError(w, h.log, "Invalid request format", http.StatusBadRequest)
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, h.log, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := h.events.RecordEvent(r.Context(), req.ClickID, req.EventType, req.EventValue)
	if err != nil {
		writeDomainError(w, h.log, err, "record event")
		return
	}

	writeJSON(w, h.log, http.StatusCreated, TrackEventResponse{Success: true, Event: event})
}

// ClickEvents возвращает события одного клика
//
//	@Summary		List the events of a click
//	@Tags			Tracking
//	@Produce		json
//	@Param			id	path		int	true	"Click ID"
//	@Success		200	{array}		domain.ConversionEvent
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/tracking/click/{id}/events [get]
func (h *TrackingHandler) ClickEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, h.log, "Invalid click id", http.StatusBadRequest)
		return
	}

	events, err := h.events.ClickEvents(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.log, err, "list click events")
		return
	}
	if events == nil {
		events = []domain.ConversionEvent{}
	}

	writeJSON(w, h.log, http.StatusOK, events)
}
