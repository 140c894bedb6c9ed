package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestShouldSkip(t *testing.T) {
	skipped := []string{"", "unknown", "not-an-ip", "127.0.0.1", "10.1.2.3", "192.168.0.10", "172.16.5.4", "::1", "fe80::1", "0.0.0.0"}
	for _, ip := range skipped {
		assert.True(t, ShouldSkip(ip), ip)
	}

	public := []string{"8.8.8.8", "200.160.2.3", "2001:4860:4860::8888"}
	for _, ip := range public {
		assert.False(t, ShouldSkip(ip), ip)
	}
}

func TestIPAPIProvider_Lookup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/8.8.8.8/json/", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ip":"8.8.8.8","city":"Mountain View","region":"California","country_name":"United States","org":"GOOGLE","timezone":"America/Los_Angeles"}`))
		}))
		defer srv.Close()

		res, err := NewIPAPIProvider(srv.URL, time.Second).Lookup(context.Background(), "8.8.8.8")
		require.NoError(t, err)
		require.NotNil(t, res.Country)
		assert.Equal(t, "United States", *res.Country)
		assert.Equal(t, "Mountain View", *res.City)
		assert.Equal(t, "California", *res.State)
		assert.Equal(t, "GOOGLE", *res.ISP)
		assert.Equal(t, "America/Los_Angeles", *res.Timezone)
	})

	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewIPAPIProvider(srv.URL, time.Second).Lookup(context.Background(), "8.8.8.8")
		assert.Error(t, err)
	})

	t.Run("provider error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":true,"reason":"Reserved IP Address"}`))
		}))
		defer srv.Close()

		_, err := NewIPAPIProvider(srv.URL, time.Second).Lookup(context.Background(), "8.8.8.8")
		assert.ErrorContains(t, err, "Reserved IP Address")
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		_, err := NewIPAPIProvider(srv.URL, 20*time.Millisecond).Lookup(context.Background(), "8.8.8.8")
		assert.Error(t, err)
	})
}

type countingProvider struct {
	calls atomic.Int32
	err   error
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Lookup(_ context.Context, ip string) (Result, error) {
	p.calls.Add(1)
	if p.err != nil {
		return Result{}, p.err
	}
	return Result{Country: optional("Brazil")}, nil
}

func TestResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("skips private addresses", func(t *testing.T) {
		p := &countingProvider{}
		r := NewResolver(p, 10, time.Minute, zap.NewNop())

		assert.True(t, r.Resolve(ctx, "192.168.1.1").IsEmpty())
		assert.True(t, r.Resolve(ctx, "").IsEmpty())
		assert.Zero(t, p.calls.Load())
	})

	t.Run("caches successful lookups", func(t *testing.T) {
		p := &countingProvider{}
		r := NewResolver(p, 10, time.Minute, zap.NewNop())

		first := r.Resolve(ctx, "8.8.8.8")
		second := r.Resolve(ctx, "8.8.8.8")
		require.NotNil(t, first.Country)
		assert.Equal(t, "Brazil", *second.Country)
		assert.Equal(t, int32(1), p.calls.Load())
	})

	t.Run("absorbs provider failures", func(t *testing.T) {
		p := &countingProvider{err: assert.AnError}
		r := NewResolver(p, 10, time.Minute, zap.NewNop())

		assert.True(t, r.Resolve(ctx, "8.8.8.8").IsEmpty())
		assert.True(t, r.Resolve(ctx, "8.8.8.8").IsEmpty())
		assert.Equal(t, int32(2), p.calls.Load())
	})

	t.Run("noop provider", func(t *testing.T) {
		r := NewResolver(NoopProvider{}, 0, 0, zap.NewNop())
		assert.True(t, r.Resolve(ctx, "8.8.8.8").IsEmpty())
	})
}

func TestOpenMaxMind_MissingFile(t *testing.T) {
	_, err := OpenMaxMind("/nonexistent/GeoLite2-City.mmdb")
	assert.Error(t, err)
}
