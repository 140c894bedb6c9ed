package analytics

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/repository"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Filter selects the clicks an analytics query runs over. All conditions are
// combined with AND; zero values mean "no condition".
type Filter struct {
	PontoDOOH string
	Campanha  string
	LinkID    *int64
	Start     *time.Time
	End       *time.Time
}

func (f Filter) clickFilter() repository.ClickFilter {
	return repository.ClickFilter{
		LinkID:    f.LinkID,
		PontoDOOH: f.PontoDOOH,
		Campanha:  f.Campanha,
		Start:     f.Start,
		End:       f.End,
	}
}

// dateLayouts are the ISO forms accepted for start_date/end_date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, domain.Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO date %q", value)
}

// ParseDateRange parses the optional bounds. The end bound is moved to the
// end of the calendar day it was written with, whatever its offset.
// Invalid values are logged and that bound is dropped.
func ParseDateRange(start, end string, log *zap.Logger) (*time.Time, *time.Time) {
	var from, to *time.Time

	if start = strings.TrimSpace(start); start != "" {
		t, err := parseDate(start)
		if err != nil {
			log.Warn("ignoring invalid start_date", zap.String("start_date", start), zap.Error(err))
		} else {
			from = &t
		}
	}

	if end = strings.TrimSpace(end); end != "" {
		t, err := parseDate(end)
		if err != nil {
			log.Warn("ignoring invalid end_date", zap.String("end_date", end), zap.Error(err))
		} else {
			eod := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), domain.Location)
			to = &eod
		}
	}

	return from, to
}

// FilterFromQuery builds a Filter from ponto_dooh, campanha, link_id,
// start_date and end_date query parameters. Only a malformed link_id is an error.
func FilterFromQuery(q url.Values, log *zap.Logger) (Filter, error) {
	f := Filter{
		PontoDOOH: strings.TrimSpace(q.Get("ponto_dooh")),
		Campanha:  strings.TrimSpace(q.Get("campanha")),
	}

	if raw := strings.TrimSpace(q.Get("link_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Filter{}, fmt.Errorf("link_id must be an integer")
		}
		f.LinkID = &id
	}

	f.Start, f.End = ParseDateRange(q.Get("start_date"), q.Get("end_date"), log)
	return f, nil
}
