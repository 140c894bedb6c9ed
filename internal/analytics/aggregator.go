// Package analytics computes click and conversion metrics by scanning the
// persisted records. Nothing is pre-aggregated.
package analytics

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/repository"
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// TopLinksLimit caps the top links list.
const TopLinksLimit = 10

const unknownBucket = "unknown"

// Store is the read side analytics needs.
type Store interface {
	GetLink(ctx context.Context, id int64) (*domain.Link, error)
	ListClicks(ctx context.Context, filter repository.ClickFilter) ([]repository.ClickRecord, error)
	ListEvents(ctx context.Context, filter repository.EventFilter) ([]domain.ConversionEvent, error)
}

// LinkMetrics is one entry of the top links list.
type LinkMetrics struct {
	LinkID         int64  `json:"link_id"`
	Identifier     string `json:"identifier"`
	DestinationURL string `json:"destination_url"`
	PontoDOOH      string `json:"ponto_dooh"`
	Campanha       string `json:"campanha"`
	TotalClicks    int64  `json:"total_clicks"`
	UniqueIPs      int64  `json:"unique_ips"`
}

// Report is the aggregate over every click matching a Filter.
type Report struct {
	TotalClicks      int64            `json:"total_clicks"`
	UniqueIPs        int64            `json:"unique_ips"`
	ClicksByPonto    map[string]int64 `json:"clicks_by_ponto"`
	ClicksByCampanha map[string]int64 `json:"clicks_by_campanha"`
	ClicksByDevice   map[string]int64 `json:"clicks_by_device"`
	ClicksByCountry  map[string]int64 `json:"clicks_by_country"`
	ClicksByDay      map[string]int64 `json:"clicks_by_day"`
	TopLinks         []LinkMetrics    `json:"top_links"`
}

// LinkReport is the aggregate for a single link.
type LinkReport struct {
	LinkID          int64            `json:"link_id"`
	Identifier      string           `json:"identifier"`
	DestinationURL  string           `json:"destination_url"`
	PontoDOOH       string           `json:"ponto_dooh"`
	Campanha        string           `json:"campanha"`
	TotalClicks     int64            `json:"total_clicks"`
	UniqueIPs       int64            `json:"unique_ips"`
	ClicksByDevice  map[string]int64 `json:"clicks_by_device"`
	ClicksByCountry map[string]int64 `json:"clicks_by_country"`
	ClicksByDay     map[string]int64 `json:"clicks_by_day"`
}

// Aggregator computes analytics reports.
type Aggregator struct {
	store Store
	log   *zap.Logger
}

func NewAggregator(store Store, log *zap.Logger) *Aggregator {
	return &Aggregator{
		store: store,
		log:   log,
	}
}

// LinkAnalytics computes the aggregate report for filter.
func (a *Aggregator) LinkAnalytics(ctx context.Context, filter Filter) (*Report, error) {
	records, err := a.store.ListClicks(ctx, filter.clickFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to scan clicks: %w", err)
	}

	report := &Report{
		TotalClicks:      int64(len(records)),
		ClicksByPonto:    make(map[string]int64),
		ClicksByCampanha: make(map[string]int64),
		ClicksByDevice:   make(map[string]int64),
		ClicksByCountry:  make(map[string]int64),
		ClicksByDay:      make(map[string]int64),
	}

	ips := newIPSet()
	perLink := make(map[int64]*linkAccumulator)

	for i := range records {
		rec := &records[i]
		ips.add(rec.IPAddress)

		report.ClicksByPonto[bucket(rec.PontoDOOH)]++
		report.ClicksByCampanha[bucket(rec.Campanha)]++
		report.ClicksByDevice[rec.GetDeviceType()]++
		report.ClicksByCountry[rec.GetCountry()]++
		report.ClicksByDay[domain.DayKey(rec.ClickedAt)]++

		acc, ok := perLink[rec.LinkID]
		if !ok {
			acc = &linkAccumulator{
				metrics: LinkMetrics{
					LinkID:         rec.LinkID,
					Identifier:     rec.Identifier,
					DestinationURL: rec.DestinationURL,
					PontoDOOH:      rec.PontoDOOH,
					Campanha:       rec.Campanha,
				},
				ips: newIPSet(),
			}
			perLink[rec.LinkID] = acc
		}
		acc.metrics.TotalClicks++
		acc.ips.add(rec.IPAddress)
	}

	report.UniqueIPs = ips.len()
	report.TopLinks = topLinks(perLink, TopLinksLimit)

	a.log.Debug("computed link analytics",
		zap.Int64("total_clicks", report.TotalClicks),
		zap.Int("top_links", len(report.TopLinks)))

	return report, nil
}

// LinkSpecificAnalytics computes the report of one link. It returns
// repository.ErrLinkNotFound when the link does not exist.
func (a *Aggregator) LinkSpecificAnalytics(ctx context.Context, linkID int64, start, end *time.Time) (*LinkReport, error) {
	link, err := a.store.GetLink(ctx, linkID)
	if err != nil {
		return nil, err
	}

	records, err := a.store.ListClicks(ctx, repository.ClickFilter{LinkID: &link.ID, Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("failed to scan clicks: %w", err)
	}

	report := &LinkReport{
		LinkID:          link.ID,
		Identifier:      link.Identifier,
		DestinationURL:  link.DestinationURL,
		PontoDOOH:       link.PontoDOOH,
		Campanha:        link.Campanha,
		TotalClicks:     int64(len(records)),
		ClicksByDevice:  make(map[string]int64),
		ClicksByCountry: make(map[string]int64),
		ClicksByDay:     make(map[string]int64),
	}

	ips := newIPSet()
	for i := range records {
		rec := &records[i]
		ips.add(rec.IPAddress)
		report.ClicksByDevice[rec.GetDeviceType()]++
		report.ClicksByCountry[rec.GetCountry()]++
		report.ClicksByDay[domain.DayKey(rec.ClickedAt)]++
	}
	report.UniqueIPs = ips.len()

	return report, nil
}

type linkAccumulator struct {
	metrics LinkMetrics
	ips     ipSet
}

// topLinks orders links by click count descending. Ties keep ascending link
// id order, the order links are retrieved in.
func topLinks(perLink map[int64]*linkAccumulator, limit int) []LinkMetrics {
	out := make([]LinkMetrics, 0, len(perLink))
	for _, acc := range perLink {
		acc.metrics.UniqueIPs = acc.ips.len()
		out = append(out, acc.metrics)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].LinkID < out[j].LinkID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalClicks > out[j].TotalClicks })

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func bucket(s string) string {
	if s == "" {
		return unknownBucket
	}
	return s
}

type ipSet map[string]struct{}

func newIPSet() ipSet { return make(ipSet) }

func (s ipSet) add(ip *string) {
	if ip != nil && *ip != "" {
		s[*ip] = struct{}{}
	}
}

func (s ipSet) len() int64 { return int64(len(s)) }
