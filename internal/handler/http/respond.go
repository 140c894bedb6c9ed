package http

import (
	"ConteudoOH-Backend/internal/repository"
	"ConteudoOH-Backend/internal/service"
	"ConteudoOH-Backend/internal/weather"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, log *zap.Logger, message string, status int) {
	writeJSON(w, log, status, ErrorResponse{Error: message})
}

// writeDomainError переводит ошибки сервисов в HTTP статусы
func writeDomainError(w http.ResponseWriter, log *zap.Logger, err error, op string) {
	var verr *service.ValidationError

	switch {
	case errors.Is(err, repository.ErrLinkNotFound),
		errors.Is(err, repository.ErrClickNotFound),
		errors.Is(err, repository.ErrNewsNotFound):
		writeError(w, log, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrIdentifierExists),
		errors.Is(err, repository.ErrNewsURLExists):
		writeError(w, log, err.Error(), http.StatusConflict)
	case errors.As(err, &verr),
		errors.Is(err, service.ErrInvalidURL),
		errors.Is(err, service.ErrInvalidEventType):
		writeError(w, log, err.Error(), http.StatusBadRequest)
	case errors.Is(err, weather.ErrLocationNotFound):
		writeError(w, log, err.Error(), http.StatusNotFound)
	case errors.Is(err, weather.ErrUpstreamUnavailable):
		log.Warn(op+" upstream unavailable", zap.Error(err))
		writeError(w, log, "weather provider unavailable", http.StatusServiceUnavailable)
	default:
		log.Error(op+" failed", zap.Error(err))
		writeError(w, log, "Internal server error", http.StatusInternalServerError)
	}
}

// pathID читает положительный числовой параметр пути
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
