// Package auth guards the request-driven mode: callers must come from an
// allowed address and present the administrator password.
package auth

import (
	"crypto/subtle"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Gate errors.
var (
	// ErrAddressNotAllowed is returned when the caller's address is not allow-listed.
	ErrAddressNotAllowed = fmt.Errorf("caller address not allowed")
	// ErrAuthenticationFailed is returned when the password is missing or wrong.
	ErrAuthenticationFailed = fmt.Errorf("authentication failed")
)

// Messages shown to rejected callers.
const (
	MsgAccessDenied = "Access denied - IP not allowed"
	MsgAuthFailed   = "Authentication failed!"
)

// PasswordField is the form field carrying the administrator password.
const PasswordField = "password"

// Gate checks caller addresses and the administrator password.
type Gate struct {
	password string
	addrs    map[netip.Addr]bool
	prefixes []netip.Prefix
}

// NewGate builds a gate. allowed entries are single addresses or CIDR
// prefixes; unparsable entries are ignored. An empty list denies everyone.
func NewGate(password string, allowed []string) *Gate {
	g := &Gate{password: password, addrs: make(map[netip.Addr]bool)}
	for _, entry := range allowed {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if p, err := netip.ParsePrefix(entry); err == nil {
				g.prefixes = append(g.prefixes, p.Masked())
			}
			continue
		}
		if a, err := netip.ParseAddr(entry); err == nil {
			g.addrs[a.Unmap()] = true
		}
	}
	return g
}

// AllowAddr reports whether remoteAddr ("host:port" or bare host) is allowed.
func (g *Gate) AllowAddr(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap().WithZone("")
	if g.addrs[addr] {
		return true
	}
	for _, p := range g.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// CheckPassword compares candidate with the configured password in constant time.
func (g *Gate) CheckPassword(candidate string) bool {
	if g.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(g.password)) == 1
}

// Authorize applies both checks to r. The form must already be parsed or be
// parseable; the address check runs first.
func (g *Gate) Authorize(r *http.Request) error {
	if !g.AllowAddr(r.RemoteAddr) {
		return ErrAddressNotAllowed
	}
	if !g.CheckPassword(r.PostFormValue(PasswordField)) {
		return ErrAuthenticationFailed
	}
	return nil
}
