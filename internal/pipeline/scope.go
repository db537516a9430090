package pipeline

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strings"
)

// ErrOutOfScope is returned when a target falls outside the configured scope.
var ErrOutOfScope = errors.New("target is out of scope")

// Scope limits which targets may be scanned.
// An empty Scope (no rules) allows any target.
type Scope struct {
	// AllowedHosts holds exact host names or "*.example.com" patterns, which
	// match any subdomain of example.com but not example.com itself.
	AllowedHosts []string

	// AllowedCIDRs applies to targets given as an IP address.
	AllowedCIDRs []string
}

func (s Scope) empty() bool {
	return len(s.AllowedHosts) == 0 && len(s.AllowedCIDRs) == 0
}

// CheckURI checks the host part of a base URI.
func (s Scope) CheckURI(raw string) error {
	if s.empty() {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return fmt.Errorf("%w: cannot extract host from %q", ErrOutOfScope, raw)
	}
	return s.CheckHost(u.Hostname())
}

// CheckHost checks a bare host name or IP address.
func (s Scope) CheckHost(host string) error {
	if s.empty() {
		return nil
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")

	if addr, err := netip.ParseAddr(host); err == nil {
		for _, cidr := range s.AllowedCIDRs {
			prefix, err := netip.ParsePrefix(cidr)
			if err != nil {
				continue
			}
			if prefix.Contains(addr) {
				return nil
			}
		}
	}
	for _, pattern := range s.AllowedHosts {
		if hostMatches(host, pattern) {
			return nil
		}
	}

	return fmt.Errorf("%w: %q (hosts: %s; cidrs: %s)", ErrOutOfScope, host,
		strings.Join(s.AllowedHosts, ", "), strings.Join(s.AllowedCIDRs, ", "))
}

func hostMatches(host, pattern string) bool {
	pattern = strings.TrimSuffix(strings.ToLower(pattern), ".")
	if suffix, ok := strings.CutPrefix(pattern, "*."); ok {
		return strings.HasSuffix(host, "."+suffix)
	}
	return host == pattern
}
