package tracking

import (
	"net"
	"net/http"
	"strings"
)

// Unknown marks an attribute that could not be determined from the request.
// It is never persisted; the click stores NULL instead.
const Unknown = "unknown"

// RequestInfo is the part of an inbound redirect request attribution needs.
type RequestInfo struct {
	IP             string
	UserAgent      string
	Referrer       string
	AcceptLanguage string
}

// RequestInfoFromHTTP extracts attribution inputs from r.
func RequestInfoFromHTTP(r *http.Request) RequestInfo {
	return RequestInfo{
		IP:             ClientIP(r),
		UserAgent:      r.UserAgent(),
		Referrer:       r.Referer(),
		AcceptLanguage: r.Header.Get("Accept-Language"),
	}
}

// ClientIP извлекает IP адрес клиента с учетом прокси: первый адрес из
// X-Forwarded-For, затем X-Real-IP, затем адрес соединения.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For может содержать список IP через запятую
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return stripPort(first)
		}
	}

	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return stripPort(ip)
	}

	if r.RemoteAddr != "" {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return r.RemoteAddr
		}
		if ip != "" {
			return ip
		}
	}

	return Unknown
}

// stripPort убирает порт, если прокси передал адрес вида host:port
func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}

// PrimaryLanguage returns the first Accept-Language entry without its
// quality weight, e.g. "pt-BR,pt;q=0.9" -> "pt-BR".
func PrimaryLanguage(header string) string {
	first := strings.Split(header, ",")[0]
	if i := strings.Index(first, ";"); i >= 0 {
		first = first[:i]
	}
	first = strings.TrimSpace(first)
	if first == "" {
		return Unknown
	}
	return first
}
