package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/net/idna"
)

// hostProfile maps candidates the way a resolver would but tolerates
// underscores, which show up in real subdomain wordlists.
var hostProfile = idna.New(idna.MapForLookup(), idna.BidiRule(), idna.StrictDomainName(false))

// DNSScanner is the native DomainScanner. It resolves word+"."+base for
// every added word through a Lookuper.
type DNSScanner struct {
	lookup     Lookuper
	settings   Settings
	baseDomain string
	words      []string
	timeout    time.Duration
	result     DomainResult
	hasResult  bool
}

// NewDNSScanner returns a scanner resolving through lookup.
func NewDNSScanner(s Settings, lookup Lookuper) (*DNSScanner, error) {
	if lookup == nil {
		return nil, errors.New("dns scanner: no resolver configured")
	}
	return &DNSScanner{lookup: lookup, settings: s}, nil
}

func (d *DNSScanner) SetBaseDomain(domain string) { d.baseDomain = domain }
func (d *DNSScanner) AddWord(word string) { d.words = append(d.words, word) }
func (d *DNSScanner) SetTimeout(t time.Duration) { d.timeout = t }

// Result returns the result of the last Run.
func (d *DNSScanner) Result() DomainResult {
	if !d.hasResult {
		return DomainResult{Status: StatusError}
	}
	out := d.result
	out.Hosts = make([]Host, len(d.result.Hosts))
	for i, h := range d.result.Hosts {
		out.Hosts[i] = Host{Name: h.Name, IPs: append([]string(nil), h.IPs...)}
	}
	return out
}

// Run resolves every candidate hostname.
func (d *DNSScanner) Run(ctx context.Context) {
	start := time.Now()
	d.result = d.run(ctx)
	d.result.ScanTime = time.Since(start)
	d.hasResult = true
}

func (d *DNSScanner) run(ctx context.Context) DomainResult {
	base := strings.TrimSuffix(strings.TrimSpace(d.baseDomain), ".")
	if base == "" {
		return DomainResult{Status: StatusError}
	}

	candidates := d.candidates(base)
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	slots := make([][]string, len(candidates))
	done := make([]bool, len(candidates))
	limiter := newLimiter(d.settings.RateLimit)

	fanOut(ctx, len(candidates), d.settings.threads(), limiter, func(ctx context.Context, i int) {
		ips, err := d.lookup.LookupHost(ctx, candidates[i])
		if err != nil && ctx.Err() != nil {
			return
		}
		done[i] = true
		if err == nil {
			slots[i] = dedupe(ips)
		}
	})

	result := DomainResult{Status: StatusDone}
	attempted := 0
	for i, ips := range slots {
		if done[i] {
			attempted++
		}
		if len(ips) == 0 {
			continue
		}
		result.Hosts = append(result.Hosts, Host{Name: candidates[i], IPs: ips})
	}
	if attempted < len(candidates) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.Status = StatusTimeout
	}
	return result
}

// candidates builds the hostnames to resolve. Words that do not form a
// valid hostname are dropped.
func (d *DNSScanner) candidates(base string) []string {
	out := make([]string, 0, len(d.words))
	for _, w := range d.words {
		w = strings.Trim(w, ".")
		if w == "" {
			continue
		}
		host, err := hostProfile.ToASCII(w + "." + base)
		if err != nil {
			continue
		}
		out = append(out, host)
	}
	return out
}

func dedupe(ips []string) []string {
	seen := make(map[string]struct{}, len(ips))
	out := make([]string, 0, len(ips))
	for _, ip := range ips {
		if _, ok := seen[ip]; ok {
			continue
		}
		seen[ip] = struct{}{}
		out = append(out, ip)
	}
	return out
}
