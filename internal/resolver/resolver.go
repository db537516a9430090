// Package resolver looks up host addresses with direct A/AAAA queries.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	mdns "github.com/miekg/dns"
)

const (
	resolvConf     = "/etc/resolv.conf"
	defaultTimeout = 5 * time.Second
)

// ErrNoAddress is returned when a name exists but carries no A or AAAA record.
var ErrNoAddress = errors.New("no address records")

// Resolver queries a fixed list of nameservers, first answer wins.
type Resolver struct {
	servers []string
	client  *mdns.Client
}

// New builds a Resolver. Servers are "host" or "host:port"; with none given
// the system resolv.conf is used.
func New(servers []string, timeout time.Duration) (*Resolver, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var addrs []string
	if len(servers) == 0 {
		conf, err := mdns.ClientConfigFromFile(resolvConf)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", resolvConf, err)
		}
		for _, s := range conf.Servers {
			addrs = append(addrs, net.JoinHostPort(s, conf.Port))
		}
	} else {
		for _, s := range servers {
			addrs = append(addrs, withPort(s))
		}
	}
	if len(addrs) == 0 {
		return nil, errors.New("no nameservers configured")
	}

	return &Resolver{
		servers: addrs,
		client:  &mdns.Client{Net: "udp", Timeout: timeout},
	}, nil
}

// Servers returns the nameserver addresses in query order.
func (r *Resolver) Servers() []string {
	return append([]string(nil), r.servers...)
}

// LookupHost returns the IPv4 then IPv6 addresses of host.
func (r *Resolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	name := mdns.Fqdn(host)

	v4, err := r.query(ctx, name, mdns.TypeA)
	if err != nil {
		return nil, err
	}
	v6, err := r.query(ctx, name, mdns.TypeAAAA)
	if err != nil && len(v4) == 0 {
		return nil, err
	}

	addrs := append(v4, v6...)
	if len(addrs) == 0 {
		return nil, fmt.Errorf("lookup %s: %w", host, ErrNoAddress)
	}
	return addrs, nil
}

func (r *Resolver) query(ctx context.Context, name string, qtype uint16) ([]string, error) {
	msg := new(mdns.Msg)
	msg.SetQuestion(name, qtype)
	msg.RecursionDesired = true

	var lastErr error
	for _, server := range r.servers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in, _, err := r.client.ExchangeContext(ctx, msg, server)
		if err != nil {
			lastErr = fmt.Errorf("query %s @%s: %w", name, server, err)
			continue
		}
		switch in.Rcode {
		case mdns.RcodeSuccess:
			return addresses(in, qtype), nil
		case mdns.RcodeNameError:
			return nil, fmt.Errorf("lookup %s: no such host", trimDot(name))
		default:
			lastErr = fmt.Errorf("query %s @%s: %s", name, server, mdns.RcodeToString[in.Rcode])
		}
	}
	return nil, lastErr
}

func addresses(in *mdns.Msg, qtype uint16) []string {
	var out []string
	for _, rr := range in.Answer {
		switch v := rr.(type) {
		case *mdns.A:
			if qtype == mdns.TypeA {
				out = append(out, v.A.String())
			}
		case *mdns.AAAA:
			if qtype == mdns.TypeAAAA {
				out = append(out, v.AAAA.String())
			}
		}
	}
	return out
}

func withPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(server, "53")
}

func trimDot(name string) string {
	if n := len(name); n > 0 && name[n-1] == '.' {
		return name[:n-1]
	}
	return name
}
