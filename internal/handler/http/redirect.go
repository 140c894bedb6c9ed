package http

import (
	"ConteudoOH-Backend/internal/repository"
	"ConteudoOH-Backend/internal/service"
	"ConteudoOH-Backend/internal/tracking"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RedirectHandler обработчик редиректов
type RedirectHandler struct {
	links  *service.LinkService
	engine *tracking.Engine
	log    *zap.Logger
}

// NewRedirectHandler создает новый обработчик редиректов
func NewRedirectHandler(links *service.LinkService, engine *tracking.Engine, log *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		links:  links,
		engine: engine,
		log:    log,
	}
}

// HandleRedirect записывает клик и перенаправляет на адрес назначения с UTM метками
//
//	@Summary		Follow a tracked link
//	@Description	Records a click and redirects to the destination with UTM parameters and click_id
//	@Tags			Redirect
//	@Param			identifier	path	string	true	"Link identifier"
//	@Success		302
//	@Failure		404	{object}	ErrorResponse
//	@Router			/r/{identifier} [get]
func (h *RedirectHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	link, err := h.links.GetByIdentifier(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			h.log.Debug("identifier not found", zap.String("identifier", identifier))
			writeError(w, h.log, "Link not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to resolve identifier", zap.String("identifier", identifier), zap.Error(err))
		writeError(w, h.log, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Клик best-effort: ошибка только логируется, редирект выполняется всегда
	result := h.engine.Track(r.Context(), link.ID, tracking.RequestInfoFromHTTP(r))
	if !result.OK() {
		h.log.Warn("click attribution failed",
			zap.Int64("link_id", link.ID),
			zap.String("identifier", identifier),
			zap.Error(result.Err))
	}

	target, err := tracking.ComposeDestination(link.DestinationURL, tracking.RedirectParams(link, result.Click))
	if err != nil {
		h.log.Error("failed to compose destination", zap.Int64("link_id", link.ID), zap.Error(err))
		target = link.DestinationURL
	}

	h.log.Debug("redirecting",
		zap.String("identifier", identifier),
		zap.String("target", target))

	http.Redirect(w, r, target, http.StatusFound)
}
