package geo

import (
	"ConteudoOH-Backend/internal/metrics"
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// Resolver applies the skip rules, caches successful lookups and absorbs
// every provider failure.
type Resolver struct {
	provider Provider
	cache    *expirable.LRU[string, Result]
	log      *zap.Logger
}

// NewResolver wraps provider. cacheSize <= 0 disables caching.
func NewResolver(provider Provider, cacheSize int, cacheTTL time.Duration, log *zap.Logger) *Resolver {
	r := &Resolver{provider: provider, log: log}
	if cacheSize > 0 {
		r.cache = expirable.NewLRU[string, Result](cacheSize, nil, cacheTTL)
	}
	return r
}

// Resolve returns the location of ip, or an empty Result when the address is
// skipped or the provider fails.
func (r *Resolver) Resolve(ctx context.Context, ip string) Result {
	if r == nil || r.provider == nil {
		return Result{}
	}
	name := r.provider.Name()
	if ShouldSkip(ip) {
		metrics.GeoLookups.WithLabelValues(name, "skipped").Inc()
		return Result{}
	}

	if r.cache != nil {
		if res, ok := r.cache.Get(ip); ok {
			metrics.GeoLookups.WithLabelValues(name, "cached").Inc()
			return res
		}
	}

	res, err := r.provider.Lookup(ctx, ip)
	if err != nil {
		metrics.GeoLookups.WithLabelValues(name, "error").Inc()
		r.log.Warn("geolocation lookup failed",
			zap.String("provider", name),
			zap.String("ip", ip),
			zap.Error(err))
		return Result{}
	}

	metrics.GeoLookups.WithLabelValues(name, "ok").Inc()
	if r.cache != nil {
		r.cache.Add(ip, res)
	}
	return res
}
