package tracking

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/geo"
	"ConteudoOH-Backend/internal/metrics"
	"ConteudoOH-Backend/internal/repository"
	"ConteudoOH-Backend/pkg/useragent"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// UAClassifier derives device, browser and OS from a User-Agent string.
type UAClassifier interface {
	ParseUserAgent(userAgent string) *useragent.DeviceInfo
}

// GeoResolver resolves an IP address; it must never fail.
type GeoResolver interface {
	Resolve(ctx context.Context, ip string) geo.Result
}

// TrackResult is the outcome of one attribution attempt. Exactly one of
// Click and Err is set.
type TrackResult struct {
	Click *domain.Click
	Err   error
}

// OK reports whether a click was recorded.
func (r TrackResult) OK() bool {
	return r.Err == nil && r.Click != nil
}

// Engine turns redirect requests into persisted clicks.
type Engine struct {
	clicks repository.ClickStorage
	ua     UAClassifier
	geo    GeoResolver
	log    *zap.Logger
}

func NewEngine(clicks repository.ClickStorage, ua UAClassifier, geo GeoResolver, log *zap.Logger) *Engine {
	return &Engine{
		clicks: clicks,
		ua:     ua,
		geo:    geo,
		log:    log,
	}
}

// Track derives the click attributes from info and inserts exactly one click
// for linkID. Failures are reported in the result, never panicked.
func (e *Engine) Track(ctx context.Context, linkID int64, info RequestInfo) (result TrackResult) {
	defer func() {
		if r := recover(); r != nil {
			result = TrackResult{Err: fmt.Errorf("click attribution panicked: %v", r)}
		}
		if result.OK() {
			metrics.ClicksTracked.WithLabelValues("ok").Inc()
		} else {
			metrics.ClicksTracked.WithLabelValues("error").Inc()
		}
	}()

	click := e.buildClick(ctx, linkID, info)
	if err := e.clicks.CreateClick(ctx, click); err != nil {
		return TrackResult{Err: fmt.Errorf("record click: %w", err)}
	}

	e.log.Debug("click recorded",
		zap.Int64("click_id", click.ID),
		zap.Int64("link_id", linkID),
		zap.String("device_type", click.GetDeviceType()),
		zap.String("country", click.GetCountry()))

	return TrackResult{Click: click}
}

func (e *Engine) buildClick(ctx context.Context, linkID int64, info RequestInfo) *domain.Click {
	device := e.parseUserAgent(info.UserAgent)

	click := &domain.Click{
		LinkID:          linkID,
		IPAddress:       known(info.IP),
		UserAgent:       nonEmpty(info.UserAgent),
		Referrer:        nonEmpty(info.Referrer),
		DeviceType:      nonEmpty(device.DeviceType),
		Browser:         nonEmpty(device.Browser),
		OperatingSystem: nonEmpty(device.OS),
		Language:        known(PrimaryLanguage(info.AcceptLanguage)),
		ClickedAt:       domain.Now(),
	}

	if e.geo != nil {
		loc := e.geo.Resolve(ctx, info.IP)
		click.Country = loc.Country
		click.City = loc.City
		click.State = loc.State
		click.ISP = loc.ISP
		click.Timezone = loc.Timezone
	}

	return click
}

func (e *Engine) parseUserAgent(raw string) *useragent.DeviceInfo {
	if e.ua == nil {
		return useragent.Unknown(raw)
	}
	info := e.ua.ParseUserAgent(raw)
	if info == nil {
		return useragent.Unknown(raw)
	}
	return info
}

// known maps the "unknown" placeholder and empty strings to NULL.
func known(s string) *string {
	if s == "" || s == Unknown {
		return nil
	}
	return &s
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
