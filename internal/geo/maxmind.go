package geo

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/maxminddb-golang"
)

// MaxMindProvider resolves addresses from a local GeoLite2/GeoIP2 City database.
// City databases carry no ISP, so that field stays nil.
type MaxMindProvider struct {
	db *maxminddb.Reader
}

// OpenMaxMind opens a .mmdb file.
func OpenMaxMind(path string) (*MaxMindProvider, error) {
	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maxmind database %s: %w", path, err)
	}
	return &MaxMindProvider{db: db}, nil
}

func (p *MaxMindProvider) Name() string { return "maxmind" }

func (p *MaxMindProvider) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

type cityRecord struct {
	Country struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"country"`
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
	Subdivisions []struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"subdivisions"`
	Location struct {
		TimeZone string `maxminddb:"time_zone"`
	} `maxminddb:"location"`
}

func (p *MaxMindProvider) Lookup(_ context.Context, ipStr string) (Result, error) {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return Result{}, fmt.Errorf("invalid ip %q", ipStr)
	}

	var record cityRecord
	if err := p.db.Lookup(ip, &record); err != nil {
		return Result{}, fmt.Errorf("maxmind lookup: %w", err)
	}

	res := Result{
		Country:  optional(record.Country.Names["en"]),
		City:     optional(record.City.Names["en"]),
		Timezone: optional(record.Location.TimeZone),
	}
	if len(record.Subdivisions) > 0 {
		res.State = optional(record.Subdivisions[0].Names["en"])
	}
	return res, nil
}
