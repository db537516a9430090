package option

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the scan timeout used when none is given on the command line.
const DefaultTimeout = 30000 * time.Millisecond

// URIOption is the immutable configuration of a URI-path scan.
type URIOption struct {
	BaseURI       string
	UseWordlist   bool
	WordlistPath  string
	RequestMethod string // uppercased as given; interpreted at invocation time
	Timeout       time.Duration
	SavePath      string
}

// DomainOption is the immutable configuration of a subdomain scan.
type DomainOption struct {
	BaseDomain   string
	UseWordlist  bool
	WordlistPath string
	Timeout      time.Duration
	SavePath     string
}

// URIParams carries the already-parsed inputs for NewURIOption.
type URIParams struct {
	Target       string
	WordlistPath string
	Method       string
	Timeout      time.Duration
	SavePath     string
}

// DomainParams carries the already-parsed inputs for NewDomainOption.
type DomainParams struct {
	Target       string
	WordlistPath string
	Timeout      time.Duration
	SavePath     string
}

// NewURIOption builds a URIOption. It never fails: an empty wordlist path
// means no wordlist and a zero timeout means DefaultTimeout.
func NewURIOption(p URIParams) URIOption {
	opt := URIOption{
		BaseURI:       NormalizeURI(p.Target),
		RequestMethod: strings.ToUpper(p.Method),
		Timeout:       p.Timeout,
		SavePath:      p.SavePath,
	}
	if opt.Timeout <= 0 {
		opt.Timeout = DefaultTimeout
	}
	if p.WordlistPath != "" {
		opt.UseWordlist = true
		opt.WordlistPath = p.WordlistPath
	}
	return opt
}

// NewDomainOption builds a DomainOption. The base domain is stored as given.
func NewDomainOption(p DomainParams) DomainOption {
	opt := DomainOption{
		BaseDomain: p.Target,
		Timeout:    p.Timeout,
		SavePath:   p.SavePath,
	}
	if opt.Timeout <= 0 {
		opt.Timeout = DefaultTimeout
	}
	if p.WordlistPath != "" {
		opt.UseWordlist = true
		opt.WordlistPath = p.WordlistPath
	}
	return opt
}

// NormalizeURI appends a trailing slash when absent. Applying it twice
// yields the same string as applying it once.
func NormalizeURI(uri string) string {
	if strings.HasSuffix(uri, "/") {
		return uri
	}
	return uri + "/"
}

// ParseTimeout converts a millisecond count into a duration.
func ParseTimeout(ms string) (time.Duration, error) {
	n, err := strconv.ParseUint(unsigned(ms), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing timeout %q: %w", ms, err)
	}
	return time.Duration(n) * time.Millisecond, nil
}
