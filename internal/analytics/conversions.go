package analytics

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Scroll depth buckets, in percent of the page.
var scrollBuckets = []int{100, 75, 50, 25}

// ConversionFilter selects the clicks and events conversion metrics run over.
// The date range applies to clicked_at for clicks and occurred_at for events.
type ConversionFilter struct {
	LinkID  *int64
	ClickID *int64
	Start   *time.Time
	End     *time.Time
}

// ConversionReport holds the engagement and conversion metrics.
//
// AvgTimeOnPage is the mean, over clicks that reported one, of each click's
// largest pageview time_on_page (seconds). ScrollDepth counts clicks by the
// deepest threshold reached (25/50/75/100; "0" below 25), taken from scroll
// depth and pageview max_scroll_depth payloads. ConversionRate is the share
// of in-scope clicks with at least one conversion event, in percent.
type ConversionReport struct {
	TotalEvents       int64            `json:"total_events"`
	EventsByType      map[string]int64 `json:"events_by_type"`
	TotalClicks       int64            `json:"total_clicks"`
	AvgTimeOnPage     float64          `json:"avg_time_on_page"`
	ScrollDepth       map[string]int64 `json:"scroll_depth_distribution"`
	TotalConversions  int64            `json:"total_conversions"`
	ConversionsByType map[string]int64 `json:"conversions_by_type"`
	ConvertedClicks   int64            `json:"converted_clicks"`
	ConversionRate    float64          `json:"conversion_rate"`
	ConversionTypes   []string         `json:"conversion_types"`
}

// ConversionMetrics computes the engagement and conversion report for filter.
func (a *Aggregator) ConversionMetrics(ctx context.Context, filter ConversionFilter) (*ConversionReport, error) {
	clicks, err := a.store.ListClicks(ctx, repository.ClickFilter{
		LinkID:  filter.LinkID,
		ClickID: filter.ClickID,
		Start:   filter.Start,
		End:     filter.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan clicks: %w", err)
	}

	events, err := a.store.ListEvents(ctx, repository.EventFilter{
		LinkID:  filter.LinkID,
		ClickID: filter.ClickID,
		Start:   filter.Start,
		End:     filter.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan conversion events: %w", err)
	}

	report := &ConversionReport{
		TotalEvents:       int64(len(events)),
		EventsByType:      make(map[string]int64),
		TotalClicks:       int64(len(clicks)),
		ScrollDepth:       map[string]int64{"0": 0, "25": 0, "50": 0, "75": 0, "100": 0},
		ConversionsByType: make(map[string]int64),
	}
	for _, t := range domain.ConversionEventTypes {
		report.ConversionTypes = append(report.ConversionTypes, string(t))
	}

	inScope := make(map[int64]struct{}, len(clicks))
	for _, c := range clicks {
		inScope[c.ID] = struct{}{}
	}

	timeOnPage := make(map[int64]float64)
	scrollDepth := make(map[int64]float64)
	converted := make(map[int64]struct{})

	for _, ev := range events {
		report.EventsByType[string(ev.EventType)]++
		payload := decodePayload(ev.EventValue)

		switch ev.EventType {
		case domain.EventPageview:
			if v, ok := numberField(payload, "time_on_page"); ok {
				keepMax(timeOnPage, ev.ClickID, v)
			}
			if v, ok := numberField(payload, "max_scroll_depth"); ok {
				keepMax(scrollDepth, ev.ClickID, v)
			}
		case domain.EventScroll:
			if v, ok := numberField(payload, "depth"); ok {
				keepMax(scrollDepth, ev.ClickID, v)
			}
		}

		if ev.EventType.IsConversion() {
			report.TotalConversions++
			report.ConversionsByType[string(ev.EventType)]++
			if _, ok := inScope[ev.ClickID]; ok {
				converted[ev.ClickID] = struct{}{}
			}
		}
	}

	if len(timeOnPage) > 0 {
		var sum float64
		for _, v := range timeOnPage {
			sum += v
		}
		report.AvgTimeOnPage = round2(sum / float64(len(timeOnPage)))
	}

	for _, depth := range scrollDepth {
		report.ScrollDepth[scrollBucket(depth)]++
	}

	report.ConvertedClicks = int64(len(converted))
	if report.TotalClicks > 0 {
		report.ConversionRate = round2(float64(report.ConvertedClicks) / float64(report.TotalClicks) * 100)
	}

	return report, nil
}

// decodePayload parses an event value as a JSON object. Non-object or
// malformed values yield nil.
func decodePayload(value *string) map[string]interface{} {
	if value == nil || *value == "" {
		return nil
	}
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(*value), &payload); err != nil {
		return nil
	}
	return payload
}

func numberField(payload map[string]interface{}, key string) (float64, bool) {
	raw, ok := payload[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func keepMax(m map[int64]float64, clickID int64, v float64) {
	if cur, ok := m[clickID]; !ok || v > cur {
		m[clickID] = v
	}
}

func scrollBucket(depth float64) string {
	for _, b := range scrollBuckets {
		if depth >= float64(b) {
			return strconv.Itoa(b)
		}
	}
	return "0"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
