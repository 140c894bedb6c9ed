package http

import (
	"ConteudoOH-Backend/internal/weather"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// WeatherHandler прогноз погоды для экранов
type WeatherHandler struct {
	weather *weather.Service
	log     *zap.Logger
}

func NewWeatherHandler(service *weather.Service, log *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		weather: service,
		log:     log,
	}
}

// Current текущая погода и прогноз
//
//	@Summary		Weather for a city
//	@Description	Without cidade the configured default location is used
//	@Tags			Weather
//	@Produce		json
//	@Param			cidade	query		string	false	"City"
//	@Param			estado	query		string	false	"State"
//	@Param			pais	query		string	false	"Country (default Brasil)"
//	@Success		200		{object}	weather.Report
//	@Failure		404		{object}	ErrorResponse	"Location not found"
//	@Failure		503		{object}	ErrorResponse	"Provider unavailable"
//	@Router			/api/clima [get]
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.weather.Current(r.Context(), weather.Query{
		City:    strings.TrimSpace(q.Get("cidade")),
		State:   strings.TrimSpace(q.Get("estado")),
		Country: strings.TrimSpace(q.Get("pais")),
	})
	if err != nil {
		writeDomainError(w, h.log, err, "weather")
		return
	}
	writeJSON(w, h.log, http.StatusOK, report)
}
