// Package geo resolves client IP addresses to approximate locations. Lookups
// are best-effort: Resolver never returns an error, only an empty Result.
package geo

import (
	"context"
	"net/netip"
	"strings"
)

// Result holds the geolocation attributes stored on a click. Nil fields were
// not determined.
type Result struct {
	Country  *string
	City     *string
	State    *string
	ISP      *string
	Timezone *string
}

// IsEmpty reports whether no attribute was determined.
func (r Result) IsEmpty() bool {
	return r.Country == nil && r.City == nil && r.State == nil && r.ISP == nil && r.Timezone == nil
}

// Provider looks up a single public IP address.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, ip string) (Result, error)
}

// ShouldSkip reports whether ip must not be sent to a provider: missing,
// unparseable, loopback, private, link-local or unspecified addresses.
func ShouldSkip(ip string) bool {
	ip = strings.TrimSpace(ip)
	if ip == "" || ip == "unknown" {
		return true
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return true
	}
	addr = addr.Unmap()
	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsUnspecified()
}

// NoopProvider never resolves anything.
type NoopProvider struct{}

func (NoopProvider) Name() string { return "none" }

func (NoopProvider) Lookup(context.Context, string) (Result, error) {
	return Result{}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
