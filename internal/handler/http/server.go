package http

import (
	"ConteudoOH-Backend/internal/analytics"
	"ConteudoOH-Backend/internal/auth"
	"ConteudoOH-Backend/internal/metrics"
	"ConteudoOH-Backend/internal/service"
	"ConteudoOH-Backend/internal/tracking"
	"ConteudoOH-Backend/internal/weather"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// RequestIDHeader заголовок корреляции запросов
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Deps зависимости HTTP слоя
type Deps struct {
	Storage        Pinger
	Links          *service.LinkService
	Events         *service.EventService
	News           *service.NewsService
	Engine         *tracking.Engine
	Aggregator     *analytics.Aggregator
	Weather        *weather.Service
	Auth           *auth.AuthHandlers // nil когда аутентификация выключена
	AuthMiddleware *auth.Middleware
	Workers        map[string]StatsProvider
	AllowedOrigins []string
	Version        string
}

// Server HTTP сервер с обработчиками
type Server struct {
	authHandlers     *auth.AuthHandlers
	authMiddleware   *auth.Middleware
	linksHandler     *LinksHandler
	redirectHandler  *RedirectHandler
	trackingHandler  *TrackingHandler
	analyticsHandler *AnalyticsHandler
	qrHandler        *QRCodeHandler
	newsHandler      *NewsHandler
	weatherHandler   *WeatherHandler
	healthHandler    *HealthHandler
	allowedOrigins   []string
	log              *zap.Logger
}

// NewServer создает новый HTTP сервер
func NewServer(deps Deps, log *zap.Logger) *Server {
	return &Server{
		authHandlers:     deps.Auth,
		authMiddleware:   deps.AuthMiddleware,
		linksHandler:     NewLinksHandler(deps.Links, log),
		redirectHandler:  NewRedirectHandler(deps.Links, deps.Engine, log),
		trackingHandler:  NewTrackingHandler(deps.Events, log),
		analyticsHandler: NewAnalyticsHandler(deps.Aggregator, log),
		qrHandler:        NewQRCodeHandler(deps.Links, log),
		newsHandler:      NewNewsHandler(deps.News, log),
		weatherHandler:   NewWeatherHandler(deps.Weather, log),
		healthHandler:    NewHealthHandler(deps.Storage, deps.Workers, deps.Version, log),
		allowedOrigins:   deps.AllowedOrigins,
		log:              log,
	}
}

// SetupRoutes настраивает маршруты
func (s *Server) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(metrics.Middleware)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(auth.CORS(s.allowedOrigins))

	// Health checks и служебные endpoints (без аутентификации)
	r.Get("/health", s.healthHandler.Health)
	r.Get("/ready", s.healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Redirect endpoint
	r.Get("/r/{identifier}", s.redirectHandler.HandleRedirect)

	r.Route("/api", func(r chi.Router) {
		if s.authHandlers != nil {
			r.Post("/auth/login", s.authHandlers.Login)
		}

		// Публичные endpoints: landing страницы и экраны
		r.Post("/tracking/event", s.trackingHandler.TrackEvent)
		r.Get("/noticias", s.newsHandler.List)
		r.Get("/noticias/aleatoria", s.newsHandler.Random)
		r.Get("/noticias/{id}", s.newsHandler.Get)
		r.Get("/noticias/{id}/qrcode", s.newsHandler.QRCode)
		r.Get("/clima", s.weatherHandler.Current)

		// Управление (с аутентификацией, если включена)
		r.Group(func(r chi.Router) {
			if s.authMiddleware != nil {
				r.Use(s.authMiddleware.RequireAuth)
			}

			r.Route("/links", func(r chi.Router) {
				r.Post("/", s.linksHandler.CreateLink)
				r.Get("/", s.linksHandler.ListLinks)
				r.Get("/{id}", s.linksHandler.GetLink)
				r.Delete("/{id}", s.linksHandler.DeleteLink)
			})

			r.Get("/tracking/click/{id}/events", s.trackingHandler.ClickEvents)

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/", s.analyticsHandler.LinkAnalytics)
				r.Get("/link/{id}", s.analyticsHandler.LinkSpecificAnalytics)
				r.Get("/conversions", s.analyticsHandler.ConversionMetrics)
				r.Get("/export", s.analyticsHandler.Export)
			})

			r.Post("/qrcode", s.qrHandler.Generate)

			r.Put("/noticias/{id}", s.newsHandler.Update)
			r.Delete("/noticias/{id}", s.newsHandler.Delete)
			r.Patch("/noticias/{id}/toggle", s.newsHandler.Toggle)
			r.Post("/noticias/atualizar", s.newsHandler.Refresh)
		})
	})

	return r
}

// requestID проставляет X-Request-ID, генерируя UUID при отсутствии
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext возвращает id текущего запроса
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug("http request",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}
