package weather

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	reportCacheSize  = 256
	geocodeCacheSize = 1024
)

type reportEntry struct {
	report    Report
	fetchedAt time.Time
}

// Cache keeps forecast reports and geocoding results. Reports outlive their
// TTL so they can be served stale when the provider is down; geocoding
// entries simply expire.
type Cache struct {
	reports   *lru.Cache[string, reportEntry]
	places    *expirable.LRU[string, Place]
	reportTTL time.Duration
	now       func() time.Time
}

func NewCache(reportTTL, geocodeTTL time.Duration) *Cache {
	reports, _ := lru.New[string, reportEntry](reportCacheSize) // size > 0, never fails
	return &Cache{
		reports:   reports,
		places:    expirable.NewLRU[string, Place](geocodeCacheSize, nil, geocodeTTL),
		reportTTL: reportTTL,
		now:       time.Now,
	}
}

// ReportKey derives the report key from coordinates rounded to 4 decimals.
func ReportKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f_%.4f", lat, lon)
}

// PlaceKey derives the geocoding key from the normalized query.
func PlaceKey(city, state, country string) string {
	raw := strings.ToLower(strings.TrimSpace(city)) + "_" +
		strings.ToLower(strings.TrimSpace(state)) + "_" +
		strings.ToLower(strings.TrimSpace(country))
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Report returns the cached report for key and whether it is still fresh.
func (c *Cache) Report(key string) (Report, bool, bool) {
	entry, ok := c.reports.Get(key)
	if !ok {
		return Report{}, false, false
	}
	return entry.report, c.now().Sub(entry.fetchedAt) < c.reportTTL, true
}

func (c *Cache) StoreReport(key string, report Report) {
	c.reports.Add(key, reportEntry{report: report, fetchedAt: c.now()})
}

func (c *Cache) Place(key string) (Place, bool) {
	return c.places.Get(key)
}

func (c *Cache) StorePlace(key string, place Place) {
	c.places.Add(key, place)
}
