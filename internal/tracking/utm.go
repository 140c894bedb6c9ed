package tracking

import (
	"ConteudoOH-Backend/internal/domain"
	"fmt"
	"net/url"
	"strings"
)

// ClickIDParam is the query parameter correlating landing-page events with a click.
const ClickIDParam = "click_id"

// ComposeDestination appends params to destination's query string in order.
// Keys already present in the destination are left untouched, so values
// supplied by the campaign owner win. Scheme, host, path and fragment are kept.
func ComposeDestination(destination string, params []domain.QueryParam) (string, error) {
	u, err := url.Parse(destination)
	if err != nil {
		return "", fmt.Errorf("parse destination url: %w", err)
	}

	existing := queryKeys(u.RawQuery)
	parts := make([]string, 0, len(params)+1)
	if u.RawQuery != "" {
		parts = append(parts, u.RawQuery)
	}

	for _, p := range params {
		if _, ok := existing[p.Key]; ok {
			continue
		}
		existing[p.Key] = struct{}{}
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}

	u.RawQuery = strings.Join(parts, "&")
	return u.String(), nil
}

// queryKeys collects the keys of a raw query. Pairs are split on both '&'
// and ';' because url.ParseQuery drops pairs containing ';'.
func queryKeys(raw string) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, pair := range strings.FieldsFunc(raw, func(r rune) bool { return r == '&' || r == ';' }) {
		key, _, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if key != "" {
			keys[key] = struct{}{}
		}
	}
	return keys
}

// RedirectParams returns the link's UTM pairs followed by click_id when a
// click was recorded.
func RedirectParams(link *domain.Link, click *domain.Click) []domain.QueryParam {
	params := link.UTMParameters()
	if click != nil && click.ID != 0 {
		params = append(params, domain.QueryParam{Key: ClickIDParam, Value: fmt.Sprintf("%d", click.ID)})
	}
	return params
}
