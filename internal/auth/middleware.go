package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ContextKey тип для ключей контекста
type ContextKey string

const (
	// UsernameKey ключ для получения имени администратора из контекста
	UsernameKey ContextKey = "username"
)

// Middleware JWT middleware для HTTP обработчиков
type Middleware struct {
	tokens *TokenIssuer
	log    *zap.Logger
}

// NewMiddleware создает новый JWT middleware
func NewMiddleware(tokens *TokenIssuer, log *zap.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		log:    log,
	}
}

// RequireAuth middleware для проверки JWT токена
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.log.Debug("missing authorization header")
			writeError(w, "Authorization required", http.StatusUnauthorized)
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			m.log.Debug("invalid authorization header format")
			writeError(w, "Invalid authorization header", http.StatusUnauthorized)
			return
		}

		username, err := m.tokens.Verify(tokenString)
		if err != nil {
			m.log.Debug("invalid token", zap.Error(err))
			if errors.Is(err, ErrExpiredToken) {
				writeError(w, "Token expired", http.StatusUnauthorized)
			} else {
				writeError(w, "Invalid token", http.StatusUnauthorized)
			}
			return
		}

		// Добавляем администратора в контекст
		ctx := context.WithValue(r.Context(), UsernameKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUsernameFromContext извлекает имя администратора из контекста
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// CORS middleware для обработки CORS запросов. "*" разрешает любой origin:
// экраны открывают API с собственных адресов.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok || allowAll {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-Request-ID, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			// Обработка preflight OPTIONS запросов
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
