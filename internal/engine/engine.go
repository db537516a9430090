// Package engine defines the scan-engine contract consumed by the invoker
// and ships the native HTTP and DNS implementations of it.
package engine

import (
	"context"
	"time"
)

// Status is the terminal outcome of one scan run.
type Status int

const (
	StatusDone Status = iota
	StatusTimeout
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusTimeout:
		return "timeout"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Method is the HTTP method used for URI probes.
type Method int

const (
	MethodGet Method = iota
	MethodPost
)

func (m Method) String() string {
	if m == MethodPost {
		return "POST"
	}
	return "GET"
}

// Response is one probed URI and the status line it returned.
type Response struct {
	URI    string `json:"uri"`
	Status string `json:"status"`
}

// URIResult is the outcome of a URI scan. Responses are in request issue
// order with one entry per attempted candidate.
type URIResult struct {
	Status    Status        `json:"status"`
	Responses []Response    `json:"responses"`
	ScanTime  time.Duration `json:"scan_time"`
}

// Host is a resolved subdomain and its addresses.
type Host struct {
	Name string   `json:"name"`
	IPs  []string `json:"ips"`
}

// DomainResult is the outcome of a subdomain scan. Only hosts that resolved
// are present.
type DomainResult struct {
	Status   Status        `json:"status"`
	Hosts    []Host        `json:"hosts"`
	ScanTime time.Duration `json:"scan_time"`
}

// URIScanner probes candidate paths under a base URI.
type URIScanner interface {
	SetBaseURI(uri string)
	AddWord(word string)
	SetMethod(m Method)
	SetTimeout(d time.Duration)
	// Run blocks until every candidate was probed or the timeout elapsed.
	Run(ctx context.Context)
	// Result is side-effect free and returns the same value on every call.
	Result() URIResult
}

// DomainScanner resolves candidate subdomains of a base domain.
type DomainScanner interface {
	SetBaseDomain(domain string)
	AddWord(word string)
	SetTimeout(d time.Duration)
	Run(ctx context.Context)
	Result() DomainResult
}

// Lookuper resolves a hostname to its addresses.
type Lookuper interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Settings tunes the native engines.
type Settings struct {
	Threads         int
	RateLimit       float64 // requests per second, 0 = unlimited
	UserAgent       string
	Proxy           string
	FollowRedirects bool
	InsecureTLS     bool
}

func (s Settings) threads() int {
	if s.Threads <= 0 {
		return 1
	}
	return s.Threads
}
