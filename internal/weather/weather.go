// Package weather serves the current conditions and forecast shown on the
// display screens.
package weather

import (
	"ConteudoOH-Backend/internal/config"
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/metrics"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrUpstreamUnavailable = errors.New("weather provider unavailable")
	ErrLocationNotFound    = errors.New("location not found")
)

const (
	hourlyPoints    = 24
	defaultCountry  = "Brasil"
	updatedAtLayout = "02/01/2006 15:04"
)

// Current is the "atual" block of a report.
type Current struct {
	Temperature   *float64 `json:"temperatura"`
	Humidity      *float64 `json:"umidade"`
	Code          *int     `json:"codigo_clima"`
	WindSpeed     *float64 `json:"velocidade_vento"`
	WindDirection *float64 `json:"direcao_vento"`
	Description   string   `json:"descricao_clima"`
	Icon          string   `json:"icone_clima"`
	UpdatedAt     string   `json:"data_atualizacao"`
	Stale         bool     `json:"dados_desatualizados,omitempty"`
	FromCache     bool     `json:"origem_cache,omitempty"`
}

type Hourly struct {
	Hour                     string   `json:"hora"`
	Temperature              *float64 `json:"temperatura"`
	Code                     *int     `json:"codigo_clima"`
	PrecipitationProbability *float64 `json:"precipitacao_prob"`
	Icon                     string   `json:"icone"`
}

type Daily struct {
	Day           string   `json:"dia"`
	Weekday       string   `json:"dia_semana"`
	TempMax       *float64 `json:"temp_max"`
	TempMin       *float64 `json:"temp_min"`
	Code          *int     `json:"codigo_clima"`
	Precipitation *float64 `json:"precipitacao"`
	WindMax       *float64 `json:"vento_max"`
	Description   string   `json:"descricao"`
	Icon          string   `json:"icone"`
}

type Location struct {
	Name      string  `json:"nome"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Report is the weather payload consumed by the screens.
type Report struct {
	Current  Current  `json:"atual"`
	Hourly   []Hourly `json:"previsao_horaria"`
	Daily    []Daily  `json:"previsao_diaria"`
	Location Location `json:"localizacao"`
}

// Query selects the location. An empty City means the configured default.
type Query struct {
	City    string
	State   string
	Country string
}

type Forecaster interface {
	Forecast(ctx context.Context, lat, lon float64) (*Timelines, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, city, state, country string) (*Place, error)
}

// Service combines geocoding, forecast and caching.
type Service struct {
	forecaster Forecaster
	geocoder   Geocoder
	cache      *Cache
	defaults   Location
	log        *zap.Logger
}

func NewService(forecaster Forecaster, geocoder Geocoder, cache *Cache, cfg *config.Weather, log *zap.Logger) *Service {
	return &Service{
		forecaster: forecaster,
		geocoder:   geocoder,
		cache:      cache,
		defaults: Location{
			Name:      cfg.CityName,
			Latitude:  cfg.Latitude,
			Longitude: cfg.Longitude,
		},
		log: log,
	}
}

// Current returns the report for q. Fresh cache entries are served as is;
// on provider failure a stale entry is served flagged dados_desatualizados,
// otherwise ErrUpstreamUnavailable is returned.
func (s *Service) Current(ctx context.Context, q Query) (*Report, error) {
	loc, err := s.locate(ctx, q)
	if err != nil {
		return nil, err
	}

	key := ReportKey(loc.Latitude, loc.Longitude)
	cached, fresh, found := s.cache.Report(key)
	if found && fresh {
		metrics.WeatherResponses.WithLabelValues("cache").Inc()
		cached.Location.Name = loc.Name
		return &cached, nil
	}

	timelines, err := s.forecaster.Forecast(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		if found {
			s.log.Warn("weather provider failed, serving stale data",
				zap.String("location", loc.Name), zap.Error(err))
			metrics.WeatherResponses.WithLabelValues("stale").Inc()
			cached.Current.Stale = true
			cached.Current.FromCache = true
			cached.Location.Name = loc.Name
			return &cached, nil
		}
		s.log.Error("weather provider failed", zap.String("location", loc.Name), zap.Error(err))
		metrics.WeatherResponses.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	report := BuildReport(timelines, loc, domain.Now())
	s.cache.StoreReport(key, report)
	metrics.WeatherResponses.WithLabelValues("provider").Inc()
	return &report, nil
}

func (s *Service) locate(ctx context.Context, q Query) (Location, error) {
	city := strings.TrimSpace(q.City)
	if city == "" {
		return s.defaults, nil
	}
	state := strings.TrimSpace(q.State)
	country := strings.TrimSpace(q.Country)
	if country == "" {
		country = defaultCountry
	}

	key := PlaceKey(city, state, country)
	if place, ok := s.cache.Place(key); ok {
		return Location{Name: place.DisplayName, Latitude: place.Latitude, Longitude: place.Longitude}, nil
	}

	place, err := s.geocoder.Geocode(ctx, city, state, country)
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			return Location{}, err
		}
		s.log.Warn("geocoding failed", zap.String("city", city), zap.String("state", state), zap.Error(err))
		return Location{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	s.cache.StorePlace(key, *place)
	return Location{Name: place.DisplayName, Latitude: place.Latitude, Longitude: place.Longitude}, nil
}

// BuildReport turns raw timelines into the screen payload. The first hourly
// point stands in for current conditions when the current timeline is empty.
func BuildReport(t *Timelines, loc Location, now time.Time) Report {
	var current Point
	switch {
	case len(t.Current) > 0:
		current = t.Current[0]
	case len(t.Hourly) > 0:
		current = t.Hourly[0]
	}

	code := weatherCode(current.Value("weatherCode"))
	report := Report{
		Current: Current{
			Temperature:   current.Value("temperature"),
			Humidity:      current.Value("humidity"),
			Code:          code,
			WindSpeed:     current.Value("windSpeed"),
			WindDirection: current.Value("windDirection"),
			Description:   Description(code),
			Icon:          Icon(code),
			UpdatedAt:     domain.InLocation(now).Format(updatedAtLayout),
		},
		Hourly:   make([]Hourly, 0, hourlyPoints),
		Daily:    make([]Daily, 0, len(t.Daily)),
		Location: loc,
	}

	for i, p := range t.Hourly {
		if i >= hourlyPoints {
			break
		}
		code := weatherCode(p.Value("weatherCode"))
		report.Hourly = append(report.Hourly, Hourly{
			Hour:                     formatTime(p.Time, "15:04"),
			Temperature:              p.Value("temperature"),
			Code:                     code,
			PrecipitationProbability: p.Value("precipitationProbability"),
			Icon:                     Icon(code),
		})
	}

	for _, p := range t.Daily {
		code := weatherCode(p.Value("weatherCode", "weatherCodeMax"))
		day := Daily{
			Day:           formatTime(p.Time, "02/01"),
			TempMax:       p.Value("temperatureMax", "temperature"),
			TempMin:       p.Value("temperatureMin", "temperature"),
			Code:          code,
			Precipitation: p.Value("precipitationAccumulation", "precipitationAccumulationSum"),
			WindMax:       p.Value("windSpeedMax", "windSpeed"),
			Description:   Description(code),
			Icon:          Icon(code),
		}
		if ts, err := time.Parse(time.RFC3339, p.Time); err == nil {
			day.Weekday = weekdays[domain.InLocation(ts).Weekday()]
		}
		report.Daily = append(report.Daily, day)
	}

	return report
}

func weatherCode(v *float64) *int {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	c := int(math.Round(*v))
	return &c
}

// formatTime renders an RFC 3339 timestamp in local time, or returns it
// unchanged when it does not parse.
func formatTime(raw, layout string) string {
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return domain.InLocation(ts).Format(layout)
}
