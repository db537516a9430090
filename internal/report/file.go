package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hakim/reconscan/internal/engine"
	"github.com/hakim/reconscan/internal/option"
)

var errNoResolver = errors.New("no resolver available")

// WriteURIReport writes the URI scan report to path, creating or truncating it.
func WriteURIReport(path string, opt option.URIOption, res engine.URIResult) error {
	var b strings.Builder

	b.WriteString("[OPTIONS]\n")
	b.WriteString(fmt.Sprintf("BASE_URI: %s\n", opt.BaseURI))
	b.WriteString(fmt.Sprintf("WORD_LIST: %s\n", opt.WordlistPath))
	b.WriteString("[RESULTS]\n")
	for _, r := range res.Responses {
		b.WriteString(fmt.Sprintf("%s,%s\n", r.URI, r.Status))
	}

	return writeFile(path, b.String())
}

// WriteDomainReport writes the domain scan report to path. The base domain is
// looked up again; its line is left out when that lookup fails.
func WriteDomainReport(ctx context.Context, path string, opt option.DomainOption, res engine.DomainResult, lookup engine.Lookuper) error {
	var b strings.Builder

	b.WriteString("[OPTIONS]\n")
	b.WriteString(fmt.Sprintf("BASE_DOMAIN: %s\n", opt.BaseDomain))
	b.WriteString(fmt.Sprintf("WORD_LIST: %s\n", opt.WordlistPath))
	b.WriteString("[RESULTS]\n")
	if ips, err := lookupBase(ctx, lookup, opt.BaseDomain); err == nil {
		b.WriteString(hostLine(opt.BaseDomain, ips))
	}
	for _, h := range res.Hosts {
		b.WriteString(hostLine(h.Name, h.IPs))
	}

	return writeFile(path, b.String())
}

func hostLine(name string, ips []string) string {
	if len(ips) == 0 {
		return name + "\n"
	}
	return name + "," + strings.Join(ips, ",") + "\n"
}

func lookupBase(ctx context.Context, lookup engine.Lookuper, host string) ([]string, error) {
	if lookup == nil {
		return nil, errNoResolver
	}
	return lookup.LookupHost(ctx, host)
}

func writeFile(path, data string) error {
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}
