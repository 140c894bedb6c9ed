package service

import (
	"ConteudoOH-Backend/internal/content"
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/repository"
	"context"

	"go.uber.org/zap"
)

// Refresher imports new feed entries on demand.
type Refresher interface {
	Refresh(ctx context.Context) (content.RefreshResult, error)
}

// NewsService serves the display content store.
type NewsService struct {
	storage   repository.NewsStorage
	refresher Refresher
	log       *zap.Logger
}

func NewNewsService(storage repository.NewsStorage, refresher Refresher, log *zap.Logger) *NewsService {
	return &NewsService{
		storage:   storage,
		refresher: refresher,
		log:       log,
	}
}

func (s *NewsService) List(ctx context.Context, active *bool) ([]domain.NewsItem, error) {
	return s.storage.ListNews(ctx, active)
}

func (s *NewsService) Get(ctx context.Context, id int64) (*domain.NewsItem, error) {
	return s.storage.GetNews(ctx, id)
}

// Random returns a random active item, repository.ErrNewsNotFound when none.
func (s *NewsService) Random(ctx context.Context) (*domain.NewsItem, error) {
	return s.storage.RandomActiveNews(ctx)
}

// Update applies an allow-listed partial update.
func (s *NewsService) Update(ctx context.Context, id int64, update domain.NewsUpdate) (*domain.NewsItem, error) {
	if update.Content != nil {
		trimmed := content.Truncate(*update.Content, content.MaxContentLength)
		update.Content = &trimmed
	}
	item, err := s.storage.UpdateNews(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated news item", zap.Int64("news_id", id))
	return item, nil
}

func (s *NewsService) Toggle(ctx context.Context, id int64) (*domain.NewsItem, error) {
	item, err := s.storage.ToggleNews(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("toggled news item", zap.Int64("news_id", id), zap.Bool("active", item.Active))
	return item, nil
}

func (s *NewsService) Delete(ctx context.Context, id int64) error {
	if err := s.storage.DeleteNews(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted news item", zap.Int64("news_id", id))
	return nil
}

// Refresh runs one import pass immediately.
func (s *NewsService) Refresh(ctx context.Context) (content.RefreshResult, error) {
	return s.refresher.Refresh(ctx)
}
