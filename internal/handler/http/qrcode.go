package http

import (
	"ConteudoOH-Backend/internal/domain"
	"ConteudoOH-Backend/internal/service"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	qrcode "github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"go.uber.org/zap"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// qrSize ширина модуля и рамки в пикселях
type qrSize struct {
	module uint8
	border int
}

var (
	qrNormal = qrSize{module: 10, border: 20}
	qrSmall  = qrSize{module: 4, border: 8}
)

// renderQR кодирует text в PNG
func renderQR(text string, size qrSize) ([]byte, error) {
	qrc, err := qrcode.New(text)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}

	var buf bytes.Buffer
	writer := standard.NewWithWriter(nopCloser{&buf},
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(size.module),
		standard.WithBorderWidth(size.border),
	)
	if err := qrc.Save(writer); err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}
	return buf.Bytes(), nil
}

func writePNG(w http.ResponseWriter, log *zap.Logger, png []byte, filename string) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Warn("failed to write qr code", zap.Error(err))
	}
}

// QRCodeHandler генерация QR кодов для рекламных носителей
type QRCodeHandler struct {
	links *service.LinkService
	log   *zap.Logger
}

func NewQRCodeHandler(links *service.LinkService, log *zap.Logger) *QRCodeHandler {
	return &QRCodeHandler{
		links: links,
		log:   log,
	}
}

// QRCodeRequest описывает носитель, для которого печатается QR код
type QRCodeRequest struct {
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

// QRCodeResponse ответ для format=json
type QRCodeResponse struct {
	Link        *domain.Link `json:"link"`
	TrackingURL string       `json:"tracking_url"`
	Created     bool         `json:"created"`
}

// Generate создает или переиспользует ссылку и рендерит ее QR код
//
//	@Summary		Generate a QR code for a campaign piece
//	@Description	Derives the identifier from campanha, ponto_dooh and qr_code_id, reusing an existing link
//	@Tags			QR
//	@Accept			json
//	@Produce		png
//	@Produce		json
//	@Security		BearerAuth
//	@Param			format	query		string			false	"png (default) or json"
//	@Param			request	body		QRCodeRequest	true	"Piece"
//	@Success		200		{object}	QRCodeResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/qrcode [post]
func (h *QRCodeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "png"
	}
	if format != "png" && format != "json" {
		writeError(w, h.log, "format must be png or json", http.StatusBadRequest)
		return
	}

	var req QRCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Debug("invalid qr code request", zap.Error(err))
		writeError(w, h.log, "Invalid request format", http.StatusBadRequest)
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, h.log, err.Error(), http.StatusBadRequest)
		return
	}

	link, created, err := h.links.EnsureForQR(r.Context(), service.QRLinkRequest{
		DestinationURL:  strings.TrimSpace(req.DestinationURL),
		PontoDOOH:       strings.TrimSpace(req.PontoDOOH),
		Campanha:        strings.TrimSpace(req.Campanha),
		QRCodeID:        req.QRCodeID,
		PecaCriativa:    req.PecaCriativa,
		LocalEspecifico: req.LocalEspecifico,
		TipoMidia:       req.TipoMidia,
		UTMSource:       req.UTMSource,
		UTMMedium:       req.UTMMedium,
		UTMCampaign:     req.UTMCampaign,
		UTMContent:      req.UTMContent,
		UTMTerm:         req.UTMTerm,
	})
	if err != nil {
		writeDomainError(w, h.log, err, "ensure qr link")
		return
	}

	trackingURL := h.links.TrackingURL(link.Identifier)

	if format == "json" {
		writeJSON(w, h.log, http.StatusOK, QRCodeResponse{
			Link:        link,
			TrackingURL: trackingURL,
			Created:     created,
		})
		return
	}

	png, err := renderQR(trackingURL, qrNormal)
	if err != nil {
		h.log.Error("failed to render qr code", zap.String("identifier", link.Identifier), zap.Error(err))
		writeError(w, h.log, "failed to generate qr code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("X-Tracking-URL", trackingURL)
	writePNG(w, h.log, png, link.Identifier+"-qr.png")
}
