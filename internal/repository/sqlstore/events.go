package sqlstore

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/repository"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// CreateEvent записывает событие конверсии
func (s *Storage) CreateEvent(ctx context.Context, event *domain.ConversionEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = domain.Now()
	} else {
		event.OccurredAt = domain.InLocation(event.OccurredAt)
	}

	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrClickNotFound
		}
		s.log.Error("failed to create conversion event",
			zap.Int64("click_id", event.ClickID),
			zap.String("event_type", string(event.EventType)),
			zap.Error(err))
		return fmt.Errorf("failed to create conversion event: %w", err)
	}
	return nil
}

// ListEvents сканирует события конверсии в порядке id
func (s *Storage) ListEvents(ctx context.Context, filter repository.EventFilter) ([]domain.ConversionEvent, error) {
	query := s.db.WithContext(ctx).
		Model(&domain.ConversionEvent{}).
		Select("conversion_events.*")

	if filter.LinkID != nil {
		query = query.
			Joins("JOIN clicks ON clicks.id = conversion_events.click_id").
			Where("clicks.link_id = ?", *filter.LinkID)
	}
	if filter.ClickID != nil {
		query = query.Where("conversion_events.click_id = ?", *filter.ClickID)
	}
	if filter.Start != nil {
		query = query.Where("conversion_events.occurred_at >= ?", localTime(filter.Start))
	}
	if filter.End != nil {
		query = query.Where("conversion_events.occurred_at <= ?", localTime(filter.End))
	}

	var events []domain.ConversionEvent
	if err := query.Order("conversion_events.id ASC").Find(&events).Error; err != nil {
		s.log.Error("failed to list conversion events", zap.Error(err))
		return nil, fmt.Errorf("failed to list conversion events: %w", err)
	}
	return events, nil
}
