package http

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/service"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// NewsHandler обработчик новостей для экранов
type NewsHandler struct {
	news *service.NewsService
	log  *zap.Logger
}

func NewNewsHandler(news *service.NewsService, log *zap.Logger) *NewsHandler {
	return &NewsHandler{
		news: news,
		log:  log,
	}
}

// List список новостей
//
//	@Summary		List news items
//	@Tags			News
//	@Produce		json
//	@Param			ativa	query		bool	false	"Only active (true) or inactive (false)"
//	@Success		200		{array}		domain.NewsItem
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/noticias [get]
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	var active *bool
	if raw := strings.TrimSpace(r.URL.Query().Get("ativa")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, h.log, "ativa must be true or false", http.StatusBadRequest)
			return
		}
		active = &v
	}

	items, err := h.news.List(r.Context(), active)
	if err != nil {
		writeDomainError(w, h.log, err, "list news")
		return
	}
	if items == nil {
		items = []domain.NewsItem{}
	}

	writeJSON(w, h.log, http.StatusOK, items)
}

// Random случайная активная новость
//
//	@Summary		Random active news item
//	@Tags			News
//	@Produce		json
//	@Success		200	{object}	domain.NewsItem
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/noticias/aleatoria [get]
func (h *NewsHandler) Random(w http.ResponseWriter, r *http.Request) {
	item, err := h.news.Random(r.Context())
	if err != nil {
		writeDomainError(w, h.log, err, "random news")
		return
	}
	writeJSON(w, h.log, http.StatusOK, item)
}

// Get новость по id
//
//	@Summary		Get a news item
//	@Tags			News
//	@Produce		json
//	@Param			id	path		int	true	"News ID"
//	@Success		200	{object}	domain.NewsItem
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/noticias/{id} [get]
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, h.log, "Invalid news id", http.StatusBadRequest)
		return
	}

	item, err := h.news.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.log, err, "get news")
		return
	}
	writeJSON(w, h.log, http.StatusOK, item)
}

// Update частичное обновление новости
//
//	@Summary		Update a news item
//	@Description	Only titulo, conteudo, imagem_url, ativa and ordem can be changed
//	@Tags			News
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int					true	"News ID"
//	@Param			request	body		domain.NewsUpdate	true	"Fields to change"
//	@Success		200		{object}	domain.NewsItem
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/noticias/{id} [put]
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, h.log, "Invalid news id", http.StatusBadRequest)
		return
	}

	var update domain.NewsUpdate
	if err := decodeJSON(r, &update); err != nil {
		h.log.Debug("invalid news update request", zap.Error(err))
		writeError(w, h.log, "Invalid request format", http.StatusBadRequest)
		return
	}
	if err := validateStruct(&update); err != nil {
		writeError(w, h.log, err.Error(), http.StatusBadRequest)
		return
	}
	if update.IsEmpty() {
		writeError(w, h.log, "no fields to update", http.StatusBadRequest)
		return
	}

	item, err := h.news.Update(r.Context(), id, update)
	if err != nil {
		writeDomainError(w, h.log, err, "update news")
		return
	}
	writeJSON(w, h.log, http.StatusOK, item)
}

// Toggle переключает флаг ativa
//
//	@Summary		Toggle a news item
//	@Tags			News
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"News ID"
//	@Success		200	{object}	domain.NewsItem
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/noticias/{id}/toggle [patch]
func (h *NewsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, h.log, "Invalid news id", http.StatusBadRequest)
		return
	}

	item, err := h.news.Toggle(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.log, err, "toggle news")
		return
	}
	writeJSON(w, h.log, http.StatusOK, item)
}

// Delete удаляет новость
//
//	@Summary		Delete a news item
//	@Tags			News
//	@Security		BearerAuth
//	@Param			id	path	int	true	"News ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/noticias/{id} [delete]
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, h.log, "Invalid news id", http.StatusBadRequest)
		return
	}

	if err := h.news.Delete(r.Context(), id); err != nil {
		writeDomainError(w, h.log, err, "delete news")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Refresh немедленно импортирует ленту
//
//	@Summary		Refresh news from the feed
//	@Tags			News
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	content.RefreshResult
//	@Failure		502	{object}	ErrorResponse
//	@Router			/api/noticias/atualizar [post]
func (h *NewsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.news.Refresh(r.Context())
	if err != nil {
		h.log.Warn("manual news refresh failed", zap.Error(err))
		writeError(w, h.log, "news feed unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

// QRCode QR код ссылки на источник новости
//
//	@Summary		QR code of a news item's source URL
//	@Tags			News
//	@Produce		png
//	@Param			id		path	int		true	"News ID"
//	@Param			tamanho	query	string	false	"pequeno or normal"
//	@Success		200
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/noticias/{id}/qrcode [get]
func (h *NewsHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, h.log, "Invalid news id", http.StatusBadRequest)
		return
	}

	item, err := h.news.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.log, err, "news qr code")
		return
	}

	size := qrNormal
	if r.URL.Query().Get("tamanho") == "pequeno" {
		size = qrSmall
	}

	png, err := renderQR(item.URL, size)
	if err != nil {
		h.log.Error("failed to render news qr code", zap.Int64("news_id", id), zap.Error(err))
		writeError(w, h.log, "failed to generate qr code", http.StatusInternalServerError)
		return
	}
	writePNG(w, h.log, png, "")
}
