// Package content imports rotating display content (news) from an RSS feed.
package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

const (
	// MaxContentLength caps the plain-text body of an entry, in characters.
	MaxContentLength = 500

	defaultLimit    = 30
	feedUserAgent   = "ConteudoOH/1.0"
	defaultImageSrc = "https://radiocentrocz.com.br"
)

// Entry is one parsed feed item ready to be stored.
type Entry struct {
	Title       string
	URL         string
	Content     string
	ImageURL    *string
	PublishedAt *time.Time
}

// FeedClient fetches and normalizes entries from an RSS/Atom feed.
type FeedClient struct {
	feedURL string
	limit   int
	parser  *gofeed.Parser
	log     *zap.Logger
}

// NewFeedClient creates a feed client. A non-positive limit falls back to 30.
func NewFeedClient(feedURL string, limit int, timeout time.Duration, log *zap.Logger) *FeedClient {
	if limit <= 0 {
		limit = defaultLimit
	}

	parser := gofeed.NewParser()
	parser.UserAgent = feedUserAgent
	parser.Client = &http.Client{Timeout: timeout}

	return &FeedClient{
		feedURL: feedURL,
		limit:   limit,
		parser:  parser,
		log:     log,
	}
}

// Fetch downloads the feed and returns up to limit entries. Entries without
// a title or link are skipped.
func (c *FeedClient) Fetch(ctx context.Context) ([]Entry, error) {
	feed, err := c.parser.ParseURLWithContext(c.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", c.feedURL, err)
	}
	return c.entries(feed), nil
}

func (c *FeedClient) entries(feed *gofeed.Feed) []Entry {
	base := imageBase(c.feedURL)
	out := make([]Entry, 0, c.limit)

	for i, item := range feed.Items {
		if i >= c.limit {
			break
		}
		if item == nil {
			continue
		}

		entry, ok := parseItem(item, base)
		if !ok {
			c.log.Debug("skipping feed item without title or link", zap.Int("index", i))
			continue
		}
		out = append(out, entry)
	}
	return out
}

func parseItem(item *gofeed.Item, base *url.URL) (Entry, bool) {
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return Entry{}, false
	}

	body := item.Content
	if strings.TrimSpace(body) == "" {
		body = item.Description
	}

	text, img := extractHTML(body)
	entry := Entry{
		Title:       title,
		URL:         link,
		Content:     Truncate(text, MaxContentLength),
		PublishedAt: item.PublishedParsed,
	}

	if img != "" {
		if abs := absoluteURL(base, img); abs != "" {
			entry.ImageURL = &abs
		}
	}
	if entry.ImageURL == nil {
		if img := itemImage(item); img != "" {
			entry.ImageURL = &img
		}
	}

	return entry, true
}

// extractHTML returns the whitespace-collapsed text of an HTML fragment and
// the src of its first <img>.
func extractHTML(fragment string) (string, string) {
	if strings.TrimSpace(fragment) == "" {
		return "", ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " "), ""
	}

	src, _ := doc.Find("img").First().Attr("src")
	text := strings.Join(strings.Fields(doc.Text()), " ")
	return text, strings.TrimSpace(src)
}

// itemImage falls back to the feed-level image or the first image enclosure.
func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func imageBase(feedURL string) *url.URL {
	if u, err := url.Parse(feedURL); err == nil && u.Scheme != "" && u.Host != "" {
		return &url.URL{Scheme: u.Scheme, Host: u.Host}
	}
	u, _ := url.Parse(defaultImageSrc)
	return u
}

// absoluteURL resolves protocol-relative and root-relative sources.
func absoluteURL(base *url.URL, src string) string {
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	if strings.HasPrefix(src, "//") {
		ref.Scheme = "https"
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
