package content

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/repository"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
  <title>Radio</title>
  <item>
    <title>  Feira livre reabre  </title>
    <link>https://radiocentrocz.com.br/feira</link>
    <pubDate>Mon, 04 Mar 2024 10:00:00 -0300</pubDate>
    <description><![CDATA[<p>Resumo</p>]]></description>
    <content:encoded><![CDATA[<p>A <b>feira</b>   volta</p><img src="/wp/feira.jpg"/>]]></content:encoded>
  </item>
  <item>
    <title>Show na praca</title>
    <link>https://radiocentrocz.com.br/show</link>
    <description><![CDATA[<p>Show gratuito</p><img src="//cdn.example.com/show.png">]]></description>
  </item>
  <item>
    <title>Sem imagem no corpo</title>
    <link>https://radiocentrocz.com.br/enclosure</link>
    <description>Texto simples</description>
    <enclosure url="https://cdn.example.com/capa.jpg" type="image/jpeg" length="10"/>
  </item>
  <item>
    <title></title>
    <link>https://radiocentrocz.com.br/sem-titulo</link>
  </item>
</channel>
</rss>`

func TestFeedClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer srv.Close()

	client := NewFeedClient(srv.URL+"/feed/gn", 30, 5*time.Second, zap.NewNop())
	entries, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, "Feira livre reabre", first.Title)
	assert.Equal(t, "https://radiocentrocz.com.br/feira", first.URL)
	assert.Equal(t, "A feira volta", first.Content)
	require.NotNil(t, first.ImageURL)
	assert.Equal(t, srv.URL+"/wp/feira.jpg", *first.ImageURL)
	require.NotNil(t, first.PublishedAt)

	require.NotNil(t, entries[1].ImageURL)
	assert.Equal(t, "https://cdn.example.com/show.png", *entries[1].ImageURL)
	assert.Equal(t, "Show gratuito", entries[1].Content)

	require.NotNil(t, entries[2].ImageURL)
	assert.Equal(t, "https://cdn.example.com/capa.jpg", *entries[2].ImageURL)

	t.Run("limit", func(t *testing.T) {
		client := NewFeedClient(srv.URL, 1, 5*time.Second, zap.NewNop())
		entries, err := client.Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("upstream error", func(t *testing.T) {
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer bad.Close()

		_, err := NewFeedClient(bad.URL, 30, time.Second, zap.NewNop()).Fetch(context.Background())
		assert.Error(t, err)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ação", Truncate("açãozinha", 4))
	assert.Len(t, []rune(Truncate(strings.Repeat("é", 600), MaxContentLength)), MaxContentLength)
}

type fakeFetcher struct {
	mu      sync.Mutex
	entries []Entry
	errs    []error
	calls   int
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.entries, nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memoryStore struct {
	mu    sync.Mutex
	items map[string]*domain.NewsItem
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: make(map[string]*domain.NewsItem)}
}

func (s *memoryStore) NewsURLExists(ctx context.Context, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[url]
	return ok, nil
}

func (s *memoryStore) CreateNews(ctx context.Context, item *domain.NewsItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.URL]; ok {
		return repository.ErrNewsURLExists
	}
	item.ID = int64(len(s.items) + 1)
	s.items[item.URL] = item
	return nil
}

func (s *memoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func testConfig() RefresherConfig {
	return RefresherConfig{
		Interval:        time.Hour,
		RetryAttempts:   3,
		RetryDelay:      time.Millisecond,
		PassTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	}
}

func TestRefresher_Refresh(t *testing.T) {
	fetcher := &fakeFetcher{entries: []Entry{
		{Title: "A", URL: "https://x/a", Content: "a"},
		{Title: "B", URL: "https://x/b", Content: "b"},
		{Title: "B again", URL: "https://x/b", Content: "b"},
	}}
	store := newMemoryStore()
	r := NewRefresher(fetcher, store, zap.NewNop(), testConfig())

	result, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RefreshResult{Added: 2, Total: 3}, result)
	assert.True(t, store.items["https://x/a"].Active)

	result, err = r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RefreshResult{Added: 0, Total: 3}, result)
	assert.Equal(t, 2, store.Len())

	stats := r.GetStats()
	assert.Equal(t, 0, stats["last_added"])
	assert.NotContains(t, stats, "last_error")
}

func TestRefresher_StartRetriesAndStops(t *testing.T) {
	fetcher := &fakeFetcher{
		entries: []Entry{{Title: "A", URL: "https://x/a"}},
		errs:    []error{errors.New("feed down"), nil},
	}
	store := newMemoryStore()
	r := NewRefresher(fetcher, store, zap.NewNop(), testConfig())

	require.NoError(t, r.Start())
	assert.Error(t, r.Start())

	assert.Eventually(t, func() bool { return store.Len() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, fetcher.Calls())

	require.NoError(t, r.Stop())
	assert.Error(t, r.Stop())
	assert.Equal(t, false, r.GetStats()["started"])
}

func TestRefresher_ConcurrentRefreshesAreSerialized(t *testing.T) {
	fetcher := &fakeFetcher{entries: []Entry{{Title: "A", URL: "https://x/a"}}}
	store := newMemoryStore()
	r := NewRefresher(fetcher, store, zap.NewNop(), testConfig())

	var wg sync.WaitGroup
	added := make(chan int, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Refresh(context.Background())
			assert.NoError(t, err)
			added <- res.Added
		}()
	}
	wg.Wait()
	close(added)

	total := 0
	for n := range added {
		total += n
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, store.Len())
}
