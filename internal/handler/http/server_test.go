package http

import (
	"ConteudoOH-Backend/internal/analytics"
	"ConteudoOH-Backend/internal/auth"
	"ConteudoOH-Backend/internal/config"
	"ConteudoOH-Backend/internal/content"
	"ConteudoOH-Backend/internal/database"
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/geo"
	"ConteudoOH-Backend/internal/repository/sqlstore"
	"ConteudoOH-Backend/internal/service"
	"ConteudoOH-Backend/internal/tracking"
	"ConteudoOH-Backend/internal/weather"
	"ConteudoOH-Backend/pkg/useragent"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testBaseURL = "http://trk.test"

type stubRefresher struct {
	result content.RefreshResult
	err    error
}

func (s stubRefresher) Refresh(context.Context) (content.RefreshResult, error) {
	return s.result, s.err
}

type staticStats map[string]interface{}

func (s staticStats) GetStats() map[string]interface{} { return s }

type failingForecaster struct{}

func (failingForecaster) Forecast(context.Context, float64, float64) (*weather.Timelines, error) {
	return nil, errors.New("provider down")
}

type missingGeocoder struct{}

func (missingGeocoder) Geocode(context.Context, string, string, string) (*weather.Place, error) {
	return nil, weather.ErrLocationNotFound
}

type testEnv struct {
	handler http.Handler
	store   *sqlstore.Storage
}

type envOption func(*Deps)

func withAuth(t *testing.T, password string) envOption {
	return func(d *Deps) {
		hash, err := auth.HashAdminPassword(password, bcrypt.MinCost)
		require.NoError(t, err)
		admin, err := auth.NewAdmin("admin", hash, bcrypt.MinCost)
		require.NoError(t, err)
		tokens := auth.NewTokenIssuer("test-secret", time.Hour)
		d.Auth = auth.NewAuthHandlers(admin, tokens, zap.NewNop())
		d.AuthMiddleware = auth.NewMiddleware(tokens, zap.NewNop())
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	log := zap.NewNop()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewConnection(&config.Database{
		Driver:          "sqlite",
		DSN:             fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name),
		ConnMaxLifetime: "1h",
	}, log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, log))
	t.Cleanup(func() { _ = database.Close(db, log) })

	store := sqlstore.New(db, log)
	engine := tracking.NewEngine(store, useragent.NewDefaultParser(log),
		geo.NewResolver(geo.NoopProvider{}, 16, time.Minute, log), log)

	weatherCfg := &config.Weather{Latitude: -6.8889, Longitude: -38.5558, CityName: "Cajazeiras - PB"}

	deps := Deps{
		Storage:        store,
		Links:          service.NewLinkService(store, log, testBaseURL),
		Events:         service.NewEventService(store, store, log),
		News:           service.NewNewsService(store, stubRefresher{result: content.RefreshResult{Added: 3, Total: 3}}, log),
		Engine:         engine,
		Aggregator:     analytics.NewAggregator(store, log),
		Weather:        weather.NewService(failingForecaster{}, missingGeocoder{}, weather.NewCache(time.Minute, time.Hour), weatherCfg, log),
		Workers:        map[string]StatsProvider{"news_refresher": staticStats{"started": false}},
		AllowedOrigins: []string{"*"},
		Version:        "test",
	}
	for _, opt := range opts {
		opt(&deps)
	}

	return &testEnv{
		handler: NewServer(deps, log).SetupRoutes(),
		store:   store,
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func (e *testEnv) createLink(t *testing.T, identifier, destination, campanha string) domain.Link {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/links", map[string]string{
		"identifier":      identifier,
		"destination_url": destination,
		"ponto_dooh":      "Shopping Sul",
		"campanha":        campanha,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[domain.Link](t, rec)
}

func (e *testEnv) follow(t *testing.T, identifier string) (*httptest.ResponseRecorder, *url.URL) {
	t.Helper()
	rec := e.do(t, http.MethodGet, "/r/"+identifier, nil,
		"User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
		"Accept-Language", "pt-BR,pt;q=0.9")
	if rec.Code != http.StatusFound {
		return rec, nil
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	return rec, loc
}

func TestRedirect_ComposesUTMAndClickID(t *testing.T) {
	env := newTestEnv(t)
	link := env.createLink(t, "summer-promo", "https://example.com/page", "verao")

	rec, loc := env.follow(t, "summer-promo")
	require.Equal(t, http.StatusFound, rec.Code)

	clickID := loc.Query().Get("click_id")
	require.NotEmpty(t, clickID)
	assert.Equal(t,
		"https://example.com/page?utm_source=ooh&utm_medium=outdoor&utm_campaign=verao&click_id="+clickID,
		loc.String())

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/links/%d", link.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[domain.Link](t, rec).TotalClicks)

	rec = env.do(t, http.MethodGet, "/api/tracking/click/"+clickID+"/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.ConversionEvent](t, rec))
}

func TestRedirect_KeepsExistingQueryParams(t *testing.T) {
	env := newTestEnv(t)
	env.createLink(t, "manual", "https://example.com/page?utm_source=manual&ref=tv#top", "verao")

	rec, loc := env.follow(t, "manual")
	require.Equal(t, http.StatusFound, rec.Code)

	q := loc.Query()
	assert.Equal(t, []string{"manual"}, q["utm_source"])
	assert.Equal(t, "tv", q.Get("ref"))
	assert.Equal(t, "outdoor", q.Get("utm_medium"))
	assert.Equal(t, "top", loc.Fragment)
	assert.NotEmpty(t, q.Get("click_id"))
}

func TestRedirect_UnknownIdentifierCreatesNoClick(t *testing.T) {
	env := newTestEnv(t)
	env.createLink(t, "exists", "https://example.com", "verao")

	for _, id := range []string{"missing", "EXISTS", "exists-2"} {
		rec, _ := env.follow(t, id)
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
	}

	rec := env.do(t, http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), decode[analytics.Report](t, rec).TotalClicks)
}

func TestLinks_CreateValidationAndList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/links", map[string]string{
		"identifier": "bad", "destination_url": "not a url", "ponto_dooh": "p", "campanha": "c",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/links", map[string]string{
		"identifier": "with/slash", "destination_url": "https://example.com", "ponto_dooh": "p", "campanha": "c",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/links", map[string]string{
		"destination_url": "https://example.com", "ponto_dooh": "p", "campanha": "c",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Error, "identifier")

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/links", "{").Code)

	for i := 0; i < 5; i++ {
		env.createLink(t, fmt.Sprintf("link-%d", i), "https://example.com", "verao")
	}
	env.createLink(t, "other", "https://example.com", "inverno")

	rec = env.do(t, http.MethodGet, "/api/links?campanha=verao&skip=1&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[ListLinksResponse](t, rec)
	assert.Len(t, page.Links, 2)
	assert.Equal(t, int64(5), page.Total)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/links?limit=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/links?skip=-1", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/links/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/links/abc", nil).Code)
}

func TestLinks_ConcurrentCreateConflict(t *testing.T) {
	env := newTestEnv(t)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := env.do(t, http.MethodPost, "/api/links", map[string]string{
				"identifier":      "race",
				"destination_url": "https://example.com",
				"ponto_dooh":      "p",
				"campanha":        "c",
			})
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	sort.Ints(codes)
	assert.Equal(t, []int{http.StatusCreated, http.StatusConflict}, codes)
}

func TestTracking_Events(t *testing.T) {
	env := newTestEnv(t)
	env.createLink(t, "promo", "https://example.com", "verao")
	_, loc := env.follow(t, "promo")
	require.NotNil(t, loc)
	clickID := loc.Query().Get("click_id")

	rec := env.do(t, http.MethodPost, "/api/tracking/event", `{"click_id":`+clickID+`,"event_type":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/tracking/event", `{"click_id":99999,"event_type":"form"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/tracking/event", `{"event_type":"form"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/tracking/event",
		`{"click_id":`+clickID+`,"event_type":"pageview","event_value":{ "time_on_page": 42 }}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[TrackEventResponse](t, rec)
	assert.True(t, created.Success)
	require.NotNil(t, created.Event.EventValue)
	assert.Equal(t, `{"time_on_page":42}`, *created.Event.EventValue)

	rec = env.do(t, http.MethodPost, "/api/tracking/event",
		`{"click_id":`+clickID+`,"event_type":"whatsapp","event_value":"5583999999999"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/tracking/click/"+clickID+"/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events := decode[[]domain.ConversionEvent](t, rec)
	require.Len(t, events, 2)

	rec = env.do(t, http.MethodGet, "/api/analytics/conversions?click_id="+clickID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[analytics.ConversionReport](t, rec)
	assert.Equal(t, int64(2), report.TotalEvents)
	assert.Equal(t, int64(1), report.TotalConversions)
	assert.Equal(t, 42.0, report.AvgTimeOnPage)
	assert.Equal(t, 100.0, report.ConversionRate)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/tracking/click/99999/events", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/analytics/conversions?link_id=x", nil).Code)
}

func TestLinks_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	link := env.createLink(t, "gone", "https://example.com", "verao")
	keep := env.createLink(t, "kept", "https://example.com", "verao")

	_, loc := env.follow(t, "gone")
	clickID := loc.Query().Get("click_id")
	env.follow(t, "kept")

	rec := env.do(t, http.MethodPost, "/api/tracking/event", `{"click_id":`+clickID+`,"event_type":"form"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/links/%d", link.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, fmt.Sprintf("/api/links/%d", link.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, fmt.Sprintf("/api/analytics/link/%d", link.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/tracking/click/"+clickID+"/events", nil).Code)

	rec = env.do(t, http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[analytics.Report](t, rec)
	assert.Equal(t, int64(1), report.TotalClicks)
	require.Len(t, report.TopLinks, 1)
	assert.Equal(t, keep.ID, report.TopLinks[0].LinkID)

	rec = env.do(t, http.MethodGet, "/api/analytics/conversions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), decode[analytics.ConversionReport](t, rec).TotalEvents)
}

func TestAnalytics_Endpoints(t *testing.T) {
	env := newTestEnv(t)
	link := env.createLink(t, "promo", "https://example.com", "verao")
	env.follow(t, "promo")
	env.follow(t, "promo")

	rec := env.do(t, http.MethodGet, "/api/analytics?campanha=verao&start_date=not-a-date", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[analytics.Report](t, rec)
	assert.Equal(t, int64(2), report.TotalClicks)
	assert.LessOrEqual(t, report.UniqueIPs, report.TotalClicks)
	assert.Equal(t, int64(2), report.ClicksByPonto["Shopping Sul"])
	assert.Equal(t, int64(2), report.ClicksByDevice["mobile"])

	rec = env.do(t, http.MethodGet, "/api/analytics?campanha=inverno", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), decode[analytics.Report](t, rec).TotalClicks)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/analytics?link_id=abc", nil).Code)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/analytics/link/%d", link.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), decode[analytics.LinkReport](t, rec).TotalClicks)

	rec = env.do(t, http.MethodGet, "/api/analytics/export?campanha=verao", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestQRCode(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]string{
		"destination_url": "https://example.com/oferta",
		"ponto_dooh":      "Shopping Sul",
		"campanha":        "Verão 2024",
		"qr_code_id":      "A1",
	}

	rec := env.do(t, http.MethodPost, "/api/qrcode?format=json", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[QRCodeResponse](t, rec)
	assert.True(t, first.Created)
	assert.Equal(t, "verao-2024-shopping-sul-a1", first.Link.Identifier)
	assert.Equal(t, testBaseURL+"/r/verao-2024-shopping-sul-a1", first.TrackingURL)
	require.NotNil(t, first.Link.UTMContent)
	assert.Equal(t, "A1", *first.Link.UTMContent)

	rec = env.do(t, http.MethodPost, "/api/qrcode", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, first.TrackingURL, rec.Header().Get("X-Tracking-URL"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = env.do(t, http.MethodGet, "/api/links", nil)
	assert.Equal(t, int64(1), decode[ListLinksResponse](t, rec).Total)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/qrcode?format=svg", body).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/qrcode", map[string]string{"campanha": "x"}).Code)
}

func TestNews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/noticias/aleatoria", nil).Code)

	active := &domain.NewsItem{Title: "Chuva no sertão", Content: "texto", URL: "https://news.test/1", Active: true}
	inactive := &domain.NewsItem{Title: "Feira", Content: "texto", URL: "https://news.test/2", Active: false}
	require.NoError(t, env.store.CreateNews(ctx, active))
	require.NoError(t, env.store.CreateNews(ctx, inactive))

	rec := env.do(t, http.MethodGet, "/api/noticias?ativa=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]domain.NewsItem](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, active.ID, items[0].ID)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/noticias?ativa=talvez", nil).Code)

	rec = env.do(t, http.MethodGet, "/api/noticias/aleatoria", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, active.ID, decode[domain.NewsItem](t, rec).ID)

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/noticias/%d/toggle", inactive.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[domain.NewsItem](t, rec).Active)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPut, fmt.Sprintf("/api/noticias/%d", active.ID), `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPut, fmt.Sprintf("/api/noticias/%d", active.ID), `{"ordem":-1}`).Code)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/noticias/%d", active.ID), `{"titulo":"Novo título","ordem":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[domain.NewsItem](t, rec)
	assert.Equal(t, "Novo título", updated.Title)
	assert.Equal(t, 2, updated.Order)
	assert.Equal(t, "https://news.test/1", updated.URL)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/noticias/%d/qrcode?tamanho=pequeno", active.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = env.do(t, http.MethodPost, "/api/noticias/atualizar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content.RefreshResult{Added: 3, Total: 3}, decode[content.RefreshResult](t, rec))

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, fmt.Sprintf("/api/noticias/%d", active.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, fmt.Sprintf("/api/noticias/%d", active.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPatch, fmt.Sprintf("/api/noticias/%d/toggle", active.ID), nil).Code)
}

func TestWeather_Errors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/clima", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/clima?cidade=Atlantida&estado=XX", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuth_ProtectsManagementRoutes(t *testing.T) {
	env := newTestEnv(t, withAuth(t, "s3cret"))

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/links", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/analytics", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/noticias/atualizar", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/noticias", nil).Code)

	rec := env.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[auth.LoginResponse](t, rec).AccessToken

	rec = env.do(t, http.MethodPost, "/api/links", map[string]string{
		"identifier": "secure", "destination_url": "https://example.com", "ponto_dooh": "p", "campanha": "c",
	}, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusCreated, rec.Code)

	// redirect stays public
	rec, _ = env.follow(t, "secure")
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[HealthResponse](t, rec)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	rec = env.do(t, http.MethodGet, "/ready", nil, RequestIDHeader, "abc-123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	ready := decode[map[string]interface{}](t, rec)
	assert.Equal(t, map[string]interface{}{"started": false}, ready["news_refresher"])

	rec = env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	rec = env.do(t, http.MethodOptions, "/api/links", nil, "Origin", "http://screen.local")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://screen.local", rec.Header().Get("Access-Control-Allow-Origin"))
}
