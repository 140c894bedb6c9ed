package service

import (
	"ConteudoOH-Backend/internal/content"
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockLinkStorage is a mock implementation of repository.LinkStorage
type MockLinkStorage struct {
	mock.Mock
}

func (m *MockLinkStorage) CreateLink(ctx context.Context, link *domain.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkStorage) UpdateLink(ctx context.Context, link *domain.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkStorage) GetLink(ctx context.Context, id int64) (*domain.Link, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkStorage) GetLinkByIdentifier(ctx context.Context, identifier string) (*domain.Link, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkStorage) ListLinks(ctx context.Context, filter repository.LinkFilter) ([]domain.Link, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Link), args.Get(1).(int64), args.Error(2)
}

func (m *MockLinkStorage) DeleteLink(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLinkStorage) CountClicksByLink(ctx context.Context, linkIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, linkIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

// MockClickStorage is a mock implementation of repository.ClickStorage
type MockClickStorage struct {
	mock.Mock
}

func (m *MockClickStorage) CreateClick(ctx context.Context, click *domain.Click) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func (m *MockClickStorage) GetClick(ctx context.Context, id int64) (*domain.Click, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Click), args.Error(1)
}

func (m *MockClickStorage) ListClicks(ctx context.Context, filter repository.ClickFilter) ([]repository.ClickRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]repository.ClickRecord), args.Error(1)
}

func (m *MockClickStorage) CountClicks(ctx context.Context, filter repository.ClickFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventStorage is a mock implementation of repository.EventStorage
type MockEventStorage struct {
	mock.Mock
}

func (m *MockEventStorage) CreateEvent(ctx context.Context, event *domain.ConversionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventStorage) ListEvents(ctx context.Context, filter repository.EventFilter) ([]domain.ConversionEvent, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ConversionEvent), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Promoção de Verão", "promocao-de-verao"},
		{"  Shopping   Norte!! ", "shopping-norte"},
		{"São João 2024", "sao-joao-2024"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestQRLinkRequest_Identifier(t *testing.T) {
	req := QRLinkRequest{Campanha: "Verão 2024", PontoDOOH: "Rodoviária"}
	assert.Equal(t, "verao-2024-rodoviaria", req.Identifier())

	req.QRCodeID = strPtr("QR #7")
	assert.Equal(t, "verao-2024-rodoviaria-qr-7", req.Identifier())

	req.Campanha = "!!!"
	assert.Equal(t, "rodoviaria-qr-7", req.Identifier())
}

func TestLinkService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("applies utm defaults", func(t *testing.T) {
		storage := &MockLinkStorage{}
		svc := NewLinkService(storage, zap.NewNop(), "https://go.example.com/")

		storage.On("CreateLink", ctx, mock.AnythingOfType("*domain.Link")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Link).ID = 7 }).
			Return(nil)

		link := &domain.Link{
			Identifier:     " summer-promo ",
			DestinationURL: "https://example.com/page",
			PontoDOOH:      "Shopping Norte",
			Campanha:       "verao",
			PecaCriativa:   strPtr("banner-a"),
		}
		require.NoError(t, svc.Create(ctx, link))

		assert.Equal(t, int64(7), link.ID)
		assert.Equal(t, "summer-promo", link.Identifier)
		assert.Equal(t, "ooh", *link.UTMSource)
		assert.Equal(t, "outdoor", *link.UTMMedium)
		assert.Equal(t, "verao", *link.UTMCampaign)
		assert.Equal(t, "banner-a", *link.UTMContent)
		assert.Nil(t, link.UTMTerm)
		assert.Equal(t, "https://go.example.com/r/summer-promo", svc.TrackingURL(link.Identifier))
		storage.AssertExpectations(t)
	})

	t.Run("conflict is passed through", func(t *testing.T) {
		storage := &MockLinkStorage{}
		svc := NewLinkService(storage, zap.NewNop(), "")
		storage.On("CreateLink", ctx, mock.Anything).Return(repository.ErrIdentifierExists)

		err := svc.Create(ctx, &domain.Link{Identifier: "dup", DestinationURL: "https://example.com"})
		assert.ErrorIs(t, err, repository.ErrIdentifierExists)
	})

	t.Run("validation", func(t *testing.T) {
		storage := &MockLinkStorage{}
		svc := NewLinkService(storage, zap.NewNop(), "")

		var verr *ValidationError
		err := svc.Create(ctx, &domain.Link{Identifier: "", DestinationURL: "https://example.com"})
		assert.ErrorAs(t, err, &verr)

		err = svc.Create(ctx, &domain.Link{Identifier: "a/b", DestinationURL: "https://example.com"})
		assert.ErrorAs(t, err, &verr)

		err = svc.Create(ctx, &domain.Link{Identifier: "ok", DestinationURL: "ftp://example.com"})
		assert.ErrorIs(t, err, ErrInvalidURL)

		err = svc.Create(ctx, &domain.Link{Identifier: "ok", DestinationURL: "/relative"})
		assert.ErrorIs(t, err, ErrInvalidURL)

		storage.AssertNotCalled(t, "CreateLink", mock.Anything, mock.Anything)
	})
}

func TestLinkService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	storage := &MockLinkStorage{}
	svc := NewLinkService(storage, zap.NewNop(), "")

	filter := repository.LinkFilter{Campanha: "verao", Limit: 10}
	storage.On("ListLinks", ctx, filter).Return([]domain.Link{{ID: 1}, {ID: 2}}, int64(12), nil)
	storage.On("CountClicksByLink", ctx, []int64{1, 2}).Return(map[int64]int64{1: 5}, nil)
	storage.On("GetLink", ctx, int64(1)).Return(&domain.Link{ID: 1}, nil)
	storage.On("CountClicksByLink", ctx, []int64{1}).Return(map[int64]int64{1: 5}, nil)
	storage.On("GetLink", ctx, int64(99)).Return(nil, repository.ErrLinkNotFound)

	links, total, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Equal(t, int64(5), links[0].TotalClicks)
	assert.Zero(t, links[1].TotalClicks)

	link, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), link.TotalClicks)

	_, err = svc.Get(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)
}

func TestLinkService_EnsureForQR(t *testing.T) {
	ctx := context.Background()
	req := QRLinkRequest{
		DestinationURL: "https://example.com/promo",
		PontoDOOH:      "Centro",
		Campanha:       "Verão",
		QRCodeID:       strPtr("qr1"),
	}

	t.Run("creates a new link", func(t *testing.T) {
		storage := &MockLinkStorage{}
		svc := NewLinkService(storage, zap.NewNop(), "")
		storage.On("GetLinkByIdentifier", ctx, "verao-centro-qr1").Return(nil, repository.ErrLinkNotFound)
		storage.On("CreateLink", ctx, mock.AnythingOfType("*domain.Link")).Return(nil)

		link, created, err := svc.EnsureForQR(ctx, req)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "verao-centro-qr1", link.Identifier)
		assert.Equal(t, "qr1", *link.UTMContent)
	})

	t.Run("reuses and patches an existing link", func(t *testing.T) {
		storage := &MockLinkStorage{}
		svc := NewLinkService(storage, zap.NewNop(), "")
		existing := &domain.Link{
			ID:             3,
			Identifier:     "verao-centro-qr1",
			DestinationURL: "https://example.com/old",
			PontoDOOH:      "Centro",
			Campanha:       "Verão",
			UTMSource:      strPtr("manual"),
		}
		storage.On("GetLinkByIdentifier", ctx, "verao-centro-qr1").Return(existing, nil)
		storage.On("UpdateLink", ctx, existing).Return(nil)

		patched := req
		patched.UTMTerm = strPtr("inverno")
		link, created, err := svc.EnsureForQR(ctx, patched)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "https://example.com/promo", link.DestinationURL)
		assert.Equal(t, "manual", *link.UTMSource)
		assert.Equal(t, "inverno", *link.UTMTerm)
		assert.Equal(t, "Verão", *link.UTMCampaign)
		storage.AssertCalled(t, "UpdateLink", ctx, existing)
	})

	t.Run("unchanged link is not rewritten", func(t *testing.T) {
		storage := &MockLinkStorage{}
		svc := NewLinkService(storage, zap.NewNop(), "")
		existing := &domain.Link{
			Identifier:     "verao-centro-qr1",
			DestinationURL: req.DestinationURL,
			PontoDOOH:      "Centro",
			Campanha:       "Verão",
			QRCodeID:       strPtr("qr1"),
		}
		existing.ApplyUTMDefaults()
		storage.On("GetLinkByIdentifier", ctx, "verao-centro-qr1").Return(existing, nil)

		_, created, err := svc.EnsureForQR(ctx, req)
		require.NoError(t, err)
		assert.False(t, created)
		storage.AssertNotCalled(t, "UpdateLink", mock.Anything, mock.Anything)
	})

	t.Run("lost creation race returns the winner", func(t *testing.T) {
		storage := &MockLinkStorage{}
		svc := NewLinkService(storage, zap.NewNop(), "")
		winner := &domain.Link{ID: 9, Identifier: "verao-centro-qr1"}
		storage.On("GetLinkByIdentifier", ctx, "verao-centro-qr1").Return(nil, repository.ErrLinkNotFound).Once()
		storage.On("CreateLink", ctx, mock.Anything).Return(repository.ErrIdentifierExists)
		storage.On("GetLinkByIdentifier", ctx, "verao-centro-qr1").Return(winner, nil).Once()

		link, created, err := svc.EnsureForQR(ctx, req)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int64(9), link.ID)
	})

	t.Run("invalid destination", func(t *testing.T) {
		svc := NewLinkService(&MockLinkStorage{}, zap.NewNop(), "")
		bad := req
		bad.DestinationURL = "not a url"
		_, _, err := svc.EnsureForQR(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidURL)
	})
}

func TestEventService_RecordEvent(t *testing.T) {
	ctx := context.Background()

	newService := func() (*EventService, *MockClickStorage, *MockEventStorage) {
		clicks := &MockClickStorage{}
		events := &MockEventStorage{}
		return NewEventService(clicks, events, zap.NewNop()), clicks, events
	}

	t.Run("object value is compacted", func(t *testing.T) {
		svc, clicks, events := newService()
		clicks.On("GetClick", ctx, int64(1)).Return(&domain.Click{ID: 1}, nil)
		events.On("CreateEvent", ctx, mock.AnythingOfType("*domain.ConversionEvent")).Return(nil)

		ev, err := svc.RecordEvent(ctx, 1, "whatsapp", json.RawMessage(`{ "href" : "https://wa.me/55" }`))
		require.NoError(t, err)
		assert.Equal(t, domain.EventWhatsApp, ev.EventType)
		require.NotNil(t, ev.EventValue)
		assert.Equal(t, `{"href":"https://wa.me/55"}`, *ev.EventValue)
		assert.False(t, ev.OccurredAt.IsZero())
	})

	t.Run("string value is stored verbatim", func(t *testing.T) {
		svc, clicks, events := newService()
		clicks.On("GetClick", ctx, int64(1)).Return(&domain.Click{ID: 1}, nil)
		events.On("CreateEvent", ctx, mock.Anything).Return(nil)

		ev, err := svc.RecordEvent(ctx, 1, "form", json.RawMessage(`"contato enviado"`))
		require.NoError(t, err)
		assert.Equal(t, "contato enviado", *ev.EventValue)

		ev, err = svc.RecordEvent(ctx, 1, "pageview", nil)
		require.NoError(t, err)
		assert.Nil(t, ev.EventValue)
	})

	t.Run("bogus type writes nothing", func(t *testing.T) {
		svc, clicks, events := newService()

		_, err := svc.RecordEvent(ctx, 1, "bogus", nil)
		assert.ErrorIs(t, err, ErrInvalidEventType)
		clicks.AssertNotCalled(t, "GetClick", mock.Anything, mock.Anything)
		events.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
	})

	t.Run("unknown click", func(t *testing.T) {
		svc, clicks, events := newService()
		clicks.On("GetClick", ctx, int64(404)).Return(nil, repository.ErrClickNotFound)

		_, err := svc.RecordEvent(ctx, 404, "call", nil)
		assert.ErrorIs(t, err, repository.ErrClickNotFound)
		events.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
	})

	t.Run("malformed value", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.RecordEvent(ctx, 1, "call", json.RawMessage(`{broken`))
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

type stubRefresher struct {
	result content.RefreshResult
	err    error
}

func (s stubRefresher) Refresh(ctx context.Context) (content.RefreshResult, error) {
	return s.result, s.err
}

func TestNewsService_Refresh(t *testing.T) {
	svc := NewNewsService(nil, stubRefresher{result: content.RefreshResult{Added: 2, Total: 5}}, zap.NewNop())
	res, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)

	svc = NewNewsService(nil, stubRefresher{err: errors.New("feed down")}, zap.NewNop())
	_, err = svc.Refresh(context.Background())
	assert.Error(t, err)
}
