package repository

import (
	"ConteudoOH-Backend/internal/domain"
	"context"
	"errors"
	"time"
)

var (
	ErrLinkNotFound     = errors.New("link not found")
	ErrIdentifierExists = errors.New("identifier already exists")
	ErrClickNotFound    = errors.New("click not found")
	ErrNewsNotFound     = errors.New("news item not found")
	ErrNewsURLExists    = errors.New("news url already exists")
)

// LinkFilter narrows link listings. Zero values mean "no filter"; Limit <= 0 means no limit.
type LinkFilter struct {
	PontoDOOH string
	Campanha  string
	Skip      int
	Limit     int
}

// ClickFilter narrows click scans. Link-scoped fields are resolved through a
// join against links; all conditions are combined with AND.
type ClickFilter struct {
	LinkID    *int64
	ClickID   *int64
	PontoDOOH string
	Campanha  string
	Start     *time.Time
	End       *time.Time
}

// EventFilter narrows conversion event scans. The date range applies to occurred_at.
type EventFilter struct {
	LinkID  *int64
	ClickID *int64
	Start   *time.Time
	End     *time.Time
}

// ClickRecord is a click together with the link attributes analytics groups by.
type ClickRecord struct {
	domain.Click
	Identifier     string
	DestinationURL string
	PontoDOOH      string
	Campanha       string
}

type LinkStorage interface {
	CreateLink(ctx context.Context, link *domain.Link) error
	UpdateLink(ctx context.Context, link *domain.Link) error
	GetLink(ctx context.Context, id int64) (*domain.Link, error)
	GetLinkByIdentifier(ctx context.Context, identifier string) (*domain.Link, error)
	ListLinks(ctx context.Context, filter LinkFilter) ([]domain.Link, int64, error)
	DeleteLink(ctx context.Context, id int64) error
	CountClicksByLink(ctx context.Context, linkIDs []int64) (map[int64]int64, error)
}

type ClickStorage interface {
	CreateClick(ctx context.Context, click *domain.Click) error
	GetClick(ctx context.Context, id int64) (*domain.Click, error)
	ListClicks(ctx context.Context, filter ClickFilter) ([]ClickRecord, error)
	CountClicks(ctx context.Context, filter ClickFilter) (int64, error)
}

type EventStorage interface {
	CreateEvent(ctx context.Context, event *domain.ConversionEvent) error
	ListEvents(ctx context.Context, filter EventFilter) ([]domain.ConversionEvent, error)
}

type NewsStorage interface {
	CreateNews(ctx context.Context, item *domain.NewsItem) error
	NewsURLExists(ctx context.Context, url string) (bool, error)
	GetNews(ctx context.Context, id int64) (*domain.NewsItem, error)
	ListNews(ctx context.Context, active *bool) ([]domain.NewsItem, error)
	RandomActiveNews(ctx context.Context) (*domain.NewsItem, error)
	UpdateNews(ctx context.Context, id int64, update domain.NewsUpdate) (*domain.NewsItem, error)
	ToggleNews(ctx context.Context, id int64) (*domain.NewsItem, error)
	DeleteNews(ctx context.Context, id int64) error
}

// Storage is the full persistence contract of the service.
type Storage interface {
	LinkStorage
	ClickStorage
	EventStorage
	NewsStorage
	Ping(ctx context.Context) error
}
