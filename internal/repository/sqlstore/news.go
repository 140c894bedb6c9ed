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

// CreateNews сохраняет новость; повторный URL возвращает ErrNewsURLExists
func (s *Storage) CreateNews(ctx context.Context, item *domain.NewsItem) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return repository.ErrNewsURLExists
		}
		s.log.Error("failed to create news item", zap.String("url", item.URL), zap.Error(err))
		return fmt.Errorf("failed to create news item: %w", err)
	}
	return nil
}

// NewsURLExists проверяет, импортирована ли уже новость с этим URL
func (s *Storage) NewsURLExists(ctx context.Context, url string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.NewsItem{}).Where("url = ?", url).Count(&count).Error
	if err != nil {
		s.log.Error("failed to check news url", zap.String("url", url), zap.Error(err))
		return false, fmt.Errorf("failed to check news url: %w", err)
	}
	return count > 0, nil
}

// GetNews получает новость по id
func (s *Storage) GetNews(ctx context.Context, id int64) (*domain.NewsItem, error) {
	var item domain.NewsItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNewsNotFound
	}
	if err != nil {
		s.log.Error("failed to get news item", zap.Int64("news_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get news item: %w", err)
	}
	return &item, nil
}

// ListNews возвращает новости от новых к старым, опционально только активные или неактивные
func (s *Storage) ListNews(ctx context.Context, active *bool) ([]domain.NewsItem, error) {
	query := s.db.WithContext(ctx).Model(&domain.NewsItem{})
	if active != nil {
		query = query.Where("active = ?", *active)
	}

	var items []domain.NewsItem
	if err := query.Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		s.log.Error("failed to list news", zap.Error(err))
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	return items, nil
}

// RandomActiveNews возвращает случайную активную новость
func (s *Storage) RandomActiveNews(ctx context.Context) (*domain.NewsItem, error) {
	var item domain.NewsItem
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("RANDOM()").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNewsNotFound
	}
	if err != nil {
		s.log.Error("failed to get random news item", zap.Error(err))
		return nil, fmt.Errorf("failed to get random news item: %w", err)
	}
	return &item, nil
}

// UpdateNews применяет частичное обновление к разрешенным полям
func (s *Storage) UpdateNews(ctx context.Context, id int64, update domain.NewsUpdate) (*domain.NewsItem, error) {
	var item domain.NewsItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNewsNotFound
			}
			return fmt.Errorf("failed to get news item: %w", err)
		}
		if update.IsEmpty() {
			return nil
		}
		if err := tx.Model(&item).Updates(update.Columns()).Error; err != nil {
			return fmt.Errorf("failed to update news item: %w", err)
		}
		update.Apply(&item)
		return nil
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNewsNotFound) {
			s.log.Error("failed to update news item", zap.Int64("news_id", id), zap.Error(err))
		}
		return nil, err
	}
	return &item, nil
}

// ToggleNews переключает флаг активности новости
func (s *Storage) ToggleNews(ctx context.Context, id int64) (*domain.NewsItem, error) {
	current, err := s.GetNews(ctx, id)
	if err != nil {
		return nil, err
	}
	active := !current.Active
	return s.UpdateNews(ctx, id, domain.NewsUpdate{Active: &active})
}

// DeleteNews удаляет новость
func (s *Storage) DeleteNews(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&domain.NewsItem{}, id)
	if result.Error != nil {
		s.log.Error("failed to delete news item", zap.Int64("news_id", id), zap.Error(result.Error))
		return fmt.Errorf("failed to delete news item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNewsNotFound
	}
	return nil
}
