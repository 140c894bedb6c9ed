package http

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/repository"
	"ConteudoOH-Backend/internal/service"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const maxListLimit = 1000

// LinksHandler обработчик реестра ссылок
type LinksHandler struct {
	links *service.LinkService
	log   *zap.Logger
}

// NewLinksHandler создает новый обработчик ссылок
func NewLinksHandler(links *service.LinkService, log *zap.Logger) *LinksHandler {
	return &LinksHandler{
		links: links,
		log:   log,
	}
}

// CreateLinkRequest структура запроса создания ссылки
type CreateLinkRequest struct {
	Identifier      string  `json:"identifier" validate:"required,max=100,excludesall=/?#"`
	DestinationURL  string  `json:"destination_url" validate:"required,url"`
	PontoDOOH       string  `json:"ponto_dooh" validate:"required,max=200"`
	Campanha        string  `json:"campanha" validate:"required,max=200"`
	QRCodeID        *string `json:"qr_code_id,omitempty" validate:"omitempty,max=100"`
	PecaCriativa    *string `json:"peca_criativa,omitempty" validate:"omitempty,max=200"`
	LocalEspecifico *string `json:"local_especifico,omitempty" validate:"omitempty,max=200"`
	TipoMidia       *string `json:"tipo_midia,omitempty" validate:"omitempty,max=100"`
	UTMSource       *string `json:"utm_source,omitempty" validate:"omitempty,max=200"`
	UTMMedium       *string `json:"utm_medium,omitempty" validate:"omitempty,max=200"`
	UTMCampaign     *string `json:"utm_campaign,omitempty" validate:"omitempty,max=200"`
	UTMContent      *string `json:"utm_content,omitempty" validate:"omitempty,max=200"`
	UTMTerm         *string `json:"utm_term,omitempty" validate:"omitempty,max=200"`
}

func (r CreateLinkRequest) toLink() *domain.Link {
	return &domain.Link{
		Identifier:      strings.TrimSpace(r.Identifier),
		DestinationURL:  strings.TrimSpace(r.DestinationURL),
		PontoDOOH:       strings.TrimSpace(r.PontoDOOH),
		Campanha:        strings.TrimSpace(r.Campanha),
		QRCodeID:        r.QRCodeID,
		PecaCriativa:    r.PecaCriativa,
		LocalEspecifico: r.LocalEspecifico,
		TipoMidia:       r.TipoMidia,
		UTMSource:       r.UTMSource,
		UTMMedium:       r.UTMMedium,
		UTMCampaign:     r.UTMCampaign,
		UTMContent:      r.UTMContent,
		UTMTerm:         r.UTMTerm,
	}
}

// ListLinksResponse структура ответа списка ссылок
type ListLinksResponse struct {
	Links []domain.Link `json:"links"`
	Total int64         `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

// CreateLink создает новую отслеживаемую ссылку
//
//	@Summary		Create a tracked link
//	@Description	Register a link; unset UTM fields are filled with defaults
//	@Tags			Links
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateLinkRequest	true	"Link creation request"
//	@Success		201		{object}	domain.Link			"Link created"
//	@Failure		400		{object}	ErrorResponse		"Invalid request data"
//	@Failure		409		{object}	ErrorResponse		"Identifier already exists"
//	@Router			/api/links [post]
func (h *LinksHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Debug("invalid create link request", zap.Error(err))
		writeError(w, h.log, "Invalid request format", http.StatusBadRequest)
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, h.log, err.Error(), http.StatusBadRequest)
		return
	}

	link := req.toLink()
	if err := h.links.Create(r.Context(), link); err != nil {
		writeDomainError(w, h.log, err, "create link")
		return
	}

	writeJSON(w, h.log, http.StatusCreated, link)
}

// ListLinks возвращает страницу ссылок
//
//	@Summary		List links
//	@Tags			Links
//	@Produce		json
//	@Security		BearerAuth
//	@Param			skip		query		int		false	"Offset"
//	@Param			limit		query		int		false	"Page size"
//	@Param			ponto_dooh	query		string	false	"Display point"
//	@Param			campanha	query		string	false	"Campaign"
//	@Success		200			{object}	ListLinksResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/api/links [get]
func (h *LinksHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, err := queryInt(q.Get("skip"), 0)
	if err != nil || skip < 0 {
		writeError(w, h.log, "skip must be a non-negative integer", http.StatusBadRequest)
		return
	}
	limit, err := queryInt(q.Get("limit"), 100)
	if err != nil || limit <= 0 || limit > maxListLimit {
		writeError(w, h.log, "limit must be between 1 and 1000", http.StatusBadRequest)
		return
	}

	links, total, err := h.links.List(r.Context(), repository.LinkFilter{
		PontoDOOH: strings.TrimSpace(q.Get("ponto_dooh")),
		Campanha:  strings.TrimSpace(q.Get("campanha")),
		Skip:      skip,
		Limit:     limit,
	})
	if err != nil {
		writeDomainError(w, h.log, err, "list links")
		return
	}
	if links == nil {
		links = []domain.Link{}
	}

	writeJSON(w, h.log, http.StatusOK, ListLinksResponse{
		Links: links,
		Total: total,
		Skip:  skip,
		Limit: limit,
	})
}

// GetLink возвращает ссылку по id
//
//	@Summary		Get a link
//	@Tags			Links
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Link ID"
//	@Success		200	{object}	domain.Link
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/links/{id} [get]
func (h *LinksHandler) GetLink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, h.log, "Invalid link id", http.StatusBadRequest)
		return
	}

	link, err := h.links.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.log, err, "get link")
		return
	}

	writeJSON(w, h.log, http.StatusOK, link)
}

// DeleteLink удаляет ссылку вместе с кликами и событиями
//
//	@Summary		Delete a link
//	@Tags			Links
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Link ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/links/{id} [delete]
func (h *LinksHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, h.log, "Invalid link id", http.StatusBadRequest)
		return
	}

	if err := h.links.Delete(r.Context(), id); err != nil {
		writeDomainError(w, h.log, err, "delete link")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
