package service

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/metrics"
	"ConteudoOH-Backend/internal/repository"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// EventService records post-click conversion events.
type EventService struct {
	clicks repository.ClickStorage
	events repository.EventStorage
	log    *zap.Logger
}

func NewEventService(clicks repository.ClickStorage, events repository.EventStorage, log *zap.Logger) *EventService {
	return &EventService{
		clicks: clicks,
		events: events,
		log:    log,
	}
}

// RecordEvent stores one event for clickID. value is any JSON value: a JSON
// string is stored as is, anything else as its compact JSON text.
func (s *EventService) RecordEvent(ctx context.Context, clickID int64, eventType string, value json.RawMessage) (*domain.ConversionEvent, error) {
	typ := domain.EventType(strings.TrimSpace(eventType))
	if !typ.IsValid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidEventType, eventType)
	}

	stored, err := encodeEventValue(value)
	if err != nil {
		return nil, err
	}

	if _, err := s.clicks.GetClick(ctx, clickID); err != nil {
		return nil, err
	}

	event := &domain.ConversionEvent{
		ClickID:    clickID,
		EventType:  typ,
		EventValue: stored,
		OccurredAt: domain.Now(),
	}
	if err := s.events.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	metrics.ConversionEvents.WithLabelValues(string(typ)).Inc()
	s.log.Debug("conversion event recorded",
		zap.Int64("event_id", event.ID),
		zap.Int64("click_id", clickID),
		zap.String("event_type", string(typ)))

	return event, nil
}

// ClickEvents lists the events of one click.
func (s *EventService) ClickEvents(ctx context.Context, clickID int64) ([]domain.ConversionEvent, error) {
	if _, err := s.clicks.GetClick(ctx, clickID); err != nil {
		return nil, err
	}
	return s.events.ListEvents(ctx, repository.EventFilter{ClickID: &clickID})
}

func encodeEventValue(raw json.RawMessage) (*string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, invalid("event_value", "malformed JSON string")
		}
		return &s, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, invalid("event_value", "malformed JSON")
	}
	s := buf.String()
	return &s, nil
}
