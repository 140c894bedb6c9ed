package sqlstore

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateClick записывает клик. ClickedAt заполняется текущим временем, если не задан.
func (s *Storage) CreateClick(ctx context.Context, click *domain.Click) error {
	if click.ClickedAt.IsZero() {
		click.ClickedAt = domain.Now()
	} else {
		click.ClickedAt = domain.InLocation(click.ClickedAt)
	}

	if err := s.db.WithContext(ctx).Omit("ConversionEvents").Create(click).Error; err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrLinkNotFound
		}
		s.log.Error("failed to create click record", zap.Int64("link_id", click.LinkID), zap.Error(err))
		return fmt.Errorf("failed to create click: %w", err)
	}
	return nil
}

// GetClick получает клик по id
func (s *Storage) GetClick(ctx context.Context, id int64) (*domain.Click, error) {
	var click domain.Click
	err := s.db.WithContext(ctx).First(&click, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrClickNotFound
	}
	if err != nil {
		s.log.Error("failed to get click", zap.Int64("click_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get click: %w", err)
	}
	return &click, nil
}

// ListClicks сканирует клики в порядке id и дополняет их атрибутами ссылок
func (s *Storage) ListClicks(ctx context.Context, filter repository.ClickFilter) ([]repository.ClickRecord, error) {
	var clicks []domain.Click
	err := s.clickQuery(ctx, filter).
		Select("clicks.*").
		Order("clicks.id ASC").
		Find(&clicks).Error
	if err != nil {
		s.log.Error("failed to list clicks", zap.Error(err))
		return nil, fmt.Errorf("failed to list clicks: %w", err)
	}
	if len(clicks) == 0 {
		return nil, nil
	}

	seen := make(map[int64]struct{})
	linkIDs := make([]int64, 0)
	for _, c := range clicks {
		if _, ok := seen[c.LinkID]; !ok {
			seen[c.LinkID] = struct{}{}
			linkIDs = append(linkIDs, c.LinkID)
		}
	}

	var links []domain.Link
	if err := s.db.WithContext(ctx).Where("id IN ?", linkIDs).Find(&links).Error; err != nil {
		s.log.Error("failed to load links for clicks", zap.Error(err))
		return nil, fmt.Errorf("failed to load links: %w", err)
	}
	byID := make(map[int64]domain.Link, len(links))
	for _, l := range links {
		byID[l.ID] = l
	}

	records := make([]repository.ClickRecord, 0, len(clicks))
	for _, c := range clicks {
		link := byID[c.LinkID]
		records = append(records, repository.ClickRecord{
			Click:          c,
			Identifier:     link.Identifier,
			DestinationURL: link.DestinationURL,
			PontoDOOH:      link.PontoDOOH,
			Campanha:       link.Campanha,
		})
	}
	return records, nil
}

// CountClicks возвращает количество кликов по фильтру
func (s *Storage) CountClicks(ctx context.Context, filter repository.ClickFilter) (int64, error) {
	var total int64
	if err := s.clickQuery(ctx, filter).Count(&total).Error; err != nil {
		s.log.Error("failed to count clicks", zap.Error(err))
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}
	return total, nil
}

func (s *Storage) clickQuery(ctx context.Context, filter repository.ClickFilter) *gorm.DB {
	query := s.db.WithContext(ctx).
		Model(&domain.Click{}).
		Joins("JOIN links ON links.id = clicks.link_id")

	if filter.LinkID != nil {
		query = query.Where("clicks.link_id = ?", *filter.LinkID)
	}
	if filter.ClickID != nil {
		query = query.Where("clicks.id = ?", *filter.ClickID)
	}
	if filter.PontoDOOH != "" {
		query = query.Where("links.ponto_dooh = ?", filter.PontoDOOH)
	}
	if filter.Campanha != "" {
		query = query.Where("links.campanha = ?", filter.Campanha)
	}
	if filter.Start != nil {
		query = query.Where("clicks.clicked_at >= ?", localTime(filter.Start))
	}
	if filter.End != nil {
		query = query.Where("clicks.clicked_at <= ?", localTime(filter.End))
	}
	return query
}
