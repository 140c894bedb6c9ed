package service

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RedirectPrefix is the public path of tracked redirects.
const RedirectPrefix = "/r/"

type LinkService struct {
	storage repository.LinkStorage
	log     *zap.Logger
	baseURL string
}

func NewLinkService(storage repository.LinkStorage, log *zap.Logger, baseURL string) *LinkService {
	return &LinkService{
		storage: storage,
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// TrackingURL returns the public redirect URL of identifier.
func (s *LinkService) TrackingURL(identifier string) string {
	return s.baseURL + RedirectPrefix + url.PathEscape(identifier)
}

// Create validates link, fills unset UTM fields and stores it. A duplicate
// identifier yields repository.ErrIdentifierExists.
func (s *LinkService) Create(ctx context.Context, link *domain.Link) error {
	link.Identifier = strings.TrimSpace(link.Identifier)
	if link.Identifier == "" {
		return invalid("identifier", "is required")
	}
	if strings.ContainsAny(link.Identifier, "/?#") {
		return invalid("identifier", "must not contain '/', '?' or '#'")
	}
	if err := ValidateDestination(link.DestinationURL); err != nil {
		return err
	}

	link.ApplyUTMDefaults()

	if err := s.storage.CreateLink(ctx, link); err != nil {
		return err
	}

	s.log.Info("created link",
		zap.Int64("link_id", link.ID),
		zap.String("identifier", link.Identifier),
		zap.String("ponto_dooh", link.PontoDOOH),
		zap.String("campanha", link.Campanha))
	return nil
}

// List returns a page of links, each with its live click count, and the
// total number of links matching the filter.
func (s *LinkService) List(ctx context.Context, filter repository.LinkFilter) ([]domain.Link, int64, error) {
	links, total, err := s.storage.ListLinks(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachClickCounts(ctx, links); err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

// Get returns one link with its live click count.
func (s *LinkService) Get(ctx context.Context, id int64) (*domain.Link, error) {
	link, err := s.storage.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.storage.CountClicksByLink(ctx, []int64{link.ID})
	if err != nil {
		return nil, err
	}
	link.TotalClicks = counts[link.ID]
	return link, nil
}

// GetByIdentifier resolves a redirect identifier.
func (s *LinkService) GetByIdentifier(ctx context.Context, identifier string) (*domain.Link, error) {
	return s.storage.GetLinkByIdentifier(ctx, identifier)
}

// Delete removes a link together with its clicks and their events.
func (s *LinkService) Delete(ctx context.Context, id int64) error {
	if err := s.storage.DeleteLink(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted link", zap.Int64("link_id", id))
	return nil
}

func (s *LinkService) attachClickCounts(ctx context.Context, links []domain.Link) error {
	if len(links) == 0 {
		return nil
	}
	ids := make([]int64, len(links))
	for i := range links {
		ids[i] = links[i].ID
	}
	counts, err := s.storage.CountClicksByLink(ctx, ids)
	if err != nil {
		return err
	}
	for i := range links {
		links[i].TotalClicks = counts[links[i].ID]
	}
	return nil
}

// QRLinkRequest describes the campaign piece a QR code is printed for.
type QRLinkRequest struct {
	DestinationURL  string
	PontoDOOH       string
	Campanha        string
	QRCodeID        *string
	PecaCriativa    *string
	LocalEspecifico *string
	TipoMidia       *string
	UTMSource       *string
	UTMMedium       *string
	UTMCampaign     *string
	UTMContent      *string
	UTMTerm         *string
}

// Identifier derives the link identifier of the piece:
// slug(campanha)-slug(ponto_dooh)[-slug(qr_code_id)].
func (r QRLinkRequest) Identifier() string {
	parts := []string{Slugify(r.Campanha), Slugify(r.PontoDOOH)}
	if r.QRCodeID != nil {
		if qr := Slugify(*r.QRCodeID); qr != "" {
			parts = append(parts, qr)
		}
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "-")
}

// EnsureForQR returns the link a QR code should point to. An existing link
// with the derived identifier is reused: missing UTM fields are patched and
// a changed destination is updated. Otherwise a new link is created.
func (s *LinkService) EnsureForQR(ctx context.Context, req QRLinkRequest) (*domain.Link, bool, error) {
	if err := ValidateDestination(req.DestinationURL); err != nil {
		return nil, false, err
	}
	identifier := req.Identifier()
	if identifier == "" {
		return nil, false, invalid("campanha", "campanha or ponto_dooh must contain letters or digits")
	}

	existing, err := s.storage.GetLinkByIdentifier(ctx, identifier)
	switch {
	case err == nil:
		if patchLink(existing, req) {
			if err := s.storage.UpdateLink(ctx, existing); err != nil {
				return nil, false, err
			}
			s.log.Info("updated link for qr code",
				zap.Int64("link_id", existing.ID),
				zap.String("identifier", identifier))
		}
		return existing, false, nil
	case !errors.Is(err, repository.ErrLinkNotFound):
		return nil, false, err
	}

	link := &domain.Link{
		Identifier:      identifier,
		DestinationURL:  req.DestinationURL,
		PontoDOOH:       req.PontoDOOH,
		Campanha:        req.Campanha,
		QRCodeID:        req.QRCodeID,
		PecaCriativa:    req.PecaCriativa,
		LocalEspecifico: req.LocalEspecifico,
		TipoMidia:       req.TipoMidia,
		UTMSource:       req.UTMSource,
		UTMMedium:       req.UTMMedium,
		UTMCampaign:     req.UTMCampaign,
		UTMContent:      req.UTMContent,
		UTMTerm:         req.UTMTerm,
	}
	if err := s.Create(ctx, link); err != nil {
		if errors.Is(err, repository.ErrIdentifierExists) {
			// concurrent generation of the same piece
			link, err := s.storage.GetLinkByIdentifier(ctx, identifier)
			return link, false, err
		}
		return nil, false, err
	}
	return link, true, nil
}

// patchLink fills unset UTM fields and updates a changed destination.
// It reports whether anything changed.
func patchLink(link *domain.Link, req QRLinkRequest) bool {
	changed := false
	if link.DestinationURL != req.DestinationURL {
		link.DestinationURL = req.DestinationURL
		changed = true
	}

	fill := func(dst **string, src *string) {
		if (*dst == nil || **dst == "") && src != nil && *src != "" {
			v := *src
			*dst = &v
			changed = true
		}
	}
	fill(&link.UTMSource, req.UTMSource)
	fill(&link.UTMMedium, req.UTMMedium)
	fill(&link.UTMCampaign, req.UTMCampaign)
	fill(&link.UTMContent, req.UTMContent)
	fill(&link.UTMTerm, req.UTMTerm)

	before := utmSnapshot(link)
	link.ApplyUTMDefaults()
	if utmSnapshot(link) != before {
		changed = true
	}
	return changed
}

func utmSnapshot(l *domain.Link) string {
	var b strings.Builder
	for _, p := range l.UTMParameters() {
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
		b.WriteByte('&')
	}
	return b.String()
}

// ValidateDestination accepts absolute http(s) URLs only.
func ValidateDestination(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: destination_url must be an absolute http(s) url", ErrInvalidURL)
	}
	return nil
}

// Slugify folds accents, lowercases and collapses every run of other
// characters into a single '-'.
func Slugify(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
