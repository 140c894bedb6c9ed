package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// AuthHandlers обработчики аутентификации администратора
type AuthHandlers struct {
	admin  *Admin
	tokens *TokenIssuer
	log    *zap.Logger
}

// NewAuthHandlers создает новые обработчики аутентификации
func NewAuthHandlers(admin *Admin, tokens *TokenIssuer, log *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		admin:  admin,
		tokens: tokens,
		log:    log,
	}
}

// LoginRequest структура запроса входа
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse структура ответа аутентификации
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login обработчик входа администратора
//
//	@Summary		Admin login
//	@Description	Exchange admin credentials for a bearer token
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest		true	"Login request"
//	@Success		200		{object}	LoginResponse		"Login successful"
//	@Failure		400		{object}	map[string]string	"Invalid request data"
//	@Failure		401		{object}	map[string]string	"Invalid credentials"
//	@Router			/api/auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid login request", zap.Error(err))
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	if !h.admin.Authenticate(req.Username, req.Password) {
		h.log.Warn("failed admin login", zap.String("username", req.Username))
		writeError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.Issue(h.admin.Username())
	if err != nil {
		h.log.Error("failed to generate access token", zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.log.Info("admin logged in", zap.String("username", h.admin.Username()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokens.TTL().Seconds()),
	})
}
