// Package main provides the entry point for the ConteudoOH backend.
//
//	@title			ConteudoOH Backend API
//	@version		1.0
//	@description	Link tracking and analytics for digital out-of-home campaigns, with news and weather content for displays.
//
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Authorization header. Format: "Bearer {token}"
package main

import (
	"ConteudoOH-Backend/internal/analytics"
	"ConteudoOH-Backend/internal/auth"
	"ConteudoOH-Backend/internal/config"
	"ConteudoOH-Backend/internal/content"
	"ConteudoOH-Backend/internal/database"
	"ConteudoOH-Backend/internal/geo"
	httpHandler "ConteudoOH-Backend/internal/handler/http"
	"ConteudoOH-Backend/internal/repository/sqlstore"
	"ConteudoOH-Backend/internal/service"
	"ConteudoOH-Backend/internal/tracking"
	"ConteudoOH-Backend/internal/weather"
	"ConteudoOH-Backend/pkg/logger"
	"ConteudoOH-Backend/pkg/useragent"
	"context"
	"errors"
	"flag"
	"fmt"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "ConteudoOH-Backend/docs" // Import swagger docs
)

const version = "1.0.0"

func main() {
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash for auth.admin_password_hash and exit")
	flag.Parse()

	cfg := config.MustLoad()

	if *hashPassword != "" {
		hash, err := auth.HashAdminPassword(*hashPassword, cfg.Auth.BcryptCost)
		if err != nil {
			lg.Fatalf("failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}
	log := logger.New(cfg.Env, cfg.Log)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting ConteudoOH backend", zap.String("env", cfg.Env), zap.String("version", version))

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations if enabled
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	// Seed initial data if enabled
	if cfg.Database.SeedData {
		log.Info("seeding database with initial data (seed_data: true)")
		if err := database.SeedData(db, log); err != nil {
			log.Fatal("failed to seed database", zap.Error(err))
		}
	}

	storage := sqlstore.New(db, log)

	// Initialize User-Agent parser
	uaParser, err := useragent.NewParser(cfg.Tracking.UARegexesPath, log)
	if err != nil {
		log.Warn("failed to load User-Agent regexes, using bundled definitions", zap.Error(err))
		uaParser = useragent.NewDefaultParser(log)
	}

	geoProvider, closeGeo := newGeoProvider(&cfg.Tracking, log)
	defer closeGeo()
	resolver := geo.NewResolver(geoProvider, cfg.Tracking.GeoCacheSize, cfg.Tracking.GeoCacheTTL, log)
	engine := tracking.NewEngine(storage, uaParser, resolver, log)

	// News refresher
	feed := content.NewFeedClient(cfg.News.FeedURL, cfg.News.Limit, cfg.News.Timeout, log)
	refresherCfg := content.DefaultConfig()
	refresherCfg.Interval = cfg.News.RefreshInterval
	refresher := content.NewRefresher(feed, storage, log, refresherCfg)
	if cfg.News.Enabled {
		if err := refresher.Start(); err != nil {
			log.Fatal("failed to start news refresher", zap.Error(err))
		}
	} else {
		log.Info("news refresher disabled (news.enabled: false)")
	}

	// Weather
	weatherService := weather.NewService(
		weather.NewForecastClient(cfg.Weather.ForecastURL, cfg.Weather.APIKey, cfg.Weather.Timeout),
		weather.NewGeocodeClient(cfg.Weather.GeocodeURL, cfg.Weather.Timeout),
		weather.NewCache(cfg.Weather.CacheTTL, cfg.Weather.GeocodeCacheTTL),
		&cfg.Weather,
		log,
	)
	if cfg.Weather.APIKey == "" {
		log.Warn("weather api key is empty, /api/clima will report the provider as unavailable")
	}

	deps := httpHandler.Deps{
		Storage:        storage,
		Links:          service.NewLinkService(storage, log, cfg.Tracking.BaseURL),
		Events:         service.NewEventService(storage, storage, log),
		News:           service.NewNewsService(storage, refresher, log),
		Engine:         engine,
		Aggregator:     analytics.NewAggregator(storage, log),
		Weather:        weatherService,
		Workers:        map[string]httpHandler.StatsProvider{"news_refresher": refresher},
		AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
		Version:        version,
	}

	// Admin authentication for the management API
	if cfg.Auth.Enabled {
		admin, err := auth.NewAdmin(cfg.Auth.AdminUser, cfg.Auth.AdminPasswordHash, cfg.Auth.BcryptCost)
		if err != nil {
			log.Fatal("invalid admin credentials", zap.Error(err))
		}
		tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
		deps.Auth = auth.NewAuthHandlers(admin, tokens, log)
		deps.AuthMiddleware = auth.NewMiddleware(tokens, log)
		log.Info("admin authentication enabled", zap.String("admin_user", cfg.Auth.AdminUser))
	} else {
		log.Warn("admin authentication disabled, management API is open")
	}

	server := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      httpHandler.NewServer(deps, log).SetupRoutes(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("starting HTTP server", zap.String("address", cfg.HTTPServer.Address))

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	if cfg.News.Enabled {
		if err := refresher.Stop(); err != nil {
			log.Error("failed to stop news refresher", zap.Error(err))
		}
	}
}

// newGeoProvider builds the configured geolocation provider and its cleanup.
func newGeoProvider(cfg *config.Tracking, log *zap.Logger) (geo.Provider, func()) {
	switch cfg.GeoProvider {
	case "maxmind":
		provider, err := geo.OpenMaxMind(cfg.GeoIPPath)
		if err != nil {
			log.Warn("failed to open GeoIP database, geolocation disabled", zap.String("path", cfg.GeoIPPath), zap.Error(err))
			return geo.NoopProvider{}, func() {}
		}
		return provider, func() {
			if err := provider.Close(); err != nil {
				log.Warn("failed to close GeoIP database", zap.Error(err))
			}
		}
	case "ipapi":
		return geo.NewIPAPIProvider(cfg.GeoEndpoint, cfg.GeoTimeout), func() {}
	default:
		log.Info("geolocation disabled (geo_provider: none)")
		return geo.NoopProvider{}, func() {}
	}
}
