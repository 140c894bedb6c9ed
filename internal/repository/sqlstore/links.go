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

// CreateLink сохраняет новую ссылку. Дубликат identifier возвращает ErrIdentifierExists,
// в том числе при гонке двух одновременных вставок.
func (s *Storage) CreateLink(ctx context.Context, link *domain.Link) error {
	var existing domain.Link
	err := s.db.WithContext(ctx).Where("identifier = ?", link.Identifier).First(&existing).Error
	if err == nil {
		return repository.ErrIdentifierExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Error("failed to check identifier existence", zap.String("identifier", link.Identifier), zap.Error(err))
		return fmt.Errorf("failed to check identifier: %w", err)
	}

	if err := s.db.WithContext(ctx).Omit("Clicks").Create(link).Error; err != nil {
		if isUniqueViolation(err) {
			return repository.ErrIdentifierExists
		}
		s.log.Error("failed to save link", zap.String("identifier", link.Identifier), zap.Error(err))
		return fmt.Errorf("failed to save link: %w", err)
	}

	s.log.Info("saved new link", zap.String("identifier", link.Identifier), zap.Int64("link_id", link.ID))
	return nil
}

// UpdateLink сохраняет все поля существующей ссылки
func (s *Storage) UpdateLink(ctx context.Context, link *domain.Link) error {
	result := s.db.WithContext(ctx).Omit("Clicks", "CreatedAt").Save(link)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return repository.ErrIdentifierExists
		}
		s.log.Error("failed to update link", zap.Int64("link_id", link.ID), zap.Error(result.Error))
		return fmt.Errorf("failed to update link: %w", result.Error)
	}
	return nil
}

// GetLink получает ссылку по id
func (s *Storage) GetLink(ctx context.Context, id int64) (*domain.Link, error) {
	var link domain.Link
	err := s.db.WithContext(ctx).First(&link, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrLinkNotFound
	}
	if err != nil {
		s.log.Error("failed to get link", zap.Int64("link_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return &link, nil
}

// GetLinkByIdentifier получает ссылку по identifier
func (s *Storage) GetLinkByIdentifier(ctx context.Context, identifier string) (*domain.Link, error) {
	var link domain.Link
	err := s.db.WithContext(ctx).Where("identifier = ?", identifier).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrLinkNotFound
	}
	if err != nil {
		s.log.Error("failed to get link", zap.String("identifier", identifier), zap.Error(err))
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return &link, nil
}

// ListLinks возвращает страницу ссылок в порядке id и общее число совпадений без учета пагинации
func (s *Storage) ListLinks(ctx context.Context, filter repository.LinkFilter) ([]domain.Link, int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.Link{})
	if filter.PontoDOOH != "" {
		query = query.Where("ponto_dooh = ?", filter.PontoDOOH)
	}
	if filter.Campanha != "" {
		query = query.Where("campanha = ?", filter.Campanha)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		s.log.Error("failed to count links", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count links: %w", err)
	}

	page := query.Order("id ASC")
	if filter.Skip > 0 {
		page = page.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		page = page.Limit(filter.Limit)
	}

	var links []domain.Link
	if err := page.Find(&links).Error; err != nil {
		s.log.Error("failed to list links", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list links: %w", err)
	}

	return links, total, nil
}

// DeleteLink удаляет ссылку вместе с ее кликами и событиями конверсии
func (s *Storage) DeleteLink(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var link domain.Link
		if err := tx.Select("id").First(&link, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrLinkNotFound
			}
			return fmt.Errorf("failed to get link: %w", err)
		}

		clickIDs := tx.Model(&domain.Click{}).Select("id").Where("link_id = ?", id)
		if err := tx.Where("click_id IN (?)", clickIDs).Delete(&domain.ConversionEvent{}).Error; err != nil {
			return fmt.Errorf("failed to delete conversion events: %w", err)
		}
		if err := tx.Where("link_id = ?", id).Delete(&domain.Click{}).Error; err != nil {
			return fmt.Errorf("failed to delete clicks: %w", err)
		}
		if err := tx.Delete(&domain.Link{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete link: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, repository.ErrLinkNotFound) {
			s.log.Error("failed to delete link", zap.Int64("link_id", id), zap.Error(err))
		}
		return err
	}

	s.log.Info("deleted link", zap.Int64("link_id", id))
	return nil
}

// CountClicksByLink возвращает количество кликов для каждой из ссылок
func (s *Storage) CountClicksByLink(ctx context.Context, linkIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(linkIDs))
	if len(linkIDs) == 0 {
		return counts, nil
	}

	var results []struct {
		LinkID int64 `gorm:"column:link_id"`
		Total  int64 `gorm:"column:total"`
	}
	err := s.db.WithContext(ctx).
		Model(&domain.Click{}).
		Select("link_id, count(*) as total").
		Where("link_id IN ?", linkIDs).
		Group("link_id").
		Find(&results).Error
	if err != nil {
		s.log.Error("failed to count clicks by link", zap.Error(err))
		return nil, fmt.Errorf("failed to count clicks: %w", err)
	}

	for _, r := range results {
		counts[r.LinkID] = r.Total
	}
	return counts, nil
}
