package engine

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrorStatus is recorded for a candidate whose request failed before a
// response arrived.
const ErrorStatus = "ERROR"

const defaultUserAgent = "reconscan/1.0"

// HTTPScanner is the native URIScanner. It probes base+word for every
// added word over a shared HTTP client.
type HTTPScanner struct {
	client    *http.Client
	settings  Settings
	baseURI   string
	words     []string
	method    Method
	timeout   time.Duration
	result    URIResult
	hasResult bool
}

// NewHTTPScanner builds the HTTP client. It fails only when the settings
// cannot produce a usable client.
func NewHTTPScanner(s Settings) (*HTTPScanner, error) {
	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: s.InsecureTLS},
		DialContext:         (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		MaxIdleConnsPerHost: s.threads(),
		MaxIdleConns:        s.threads(),
	}

	if s.Proxy != "" {
		proxyURL, err := url.Parse(s.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", s.Proxy, err)
		}
		if proxyURL.Scheme == "" || proxyURL.Host == "" {
			return nil, fmt.Errorf("invalid proxy URL %q: scheme and host required", s.Proxy)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	client := &http.Client{Transport: transport}
	if !s.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	if s.UserAgent == "" {
		s.UserAgent = defaultUserAgent
	}

	return &HTTPScanner{client: client, settings: s, method: MethodGet}, nil
}

func (h *HTTPScanner) SetBaseURI(uri string) { h.baseURI = uri }
func (h *HTTPScanner) AddWord(word string) { h.words = append(h.words, word) }
func (h *HTTPScanner) SetMethod(m Method) { h.method = m }
func (h *HTTPScanner) SetTimeout(d time.Duration) { h.timeout = d }

// Result returns the result of the last Run.
func (h *HTTPScanner) Result() URIResult {
	if !h.hasResult {
		return URIResult{Status: StatusError}
	}
	out := h.result
	out.Responses = append([]Response(nil), h.result.Responses...)
	return out
}

// Run probes every candidate. With no words the base URI itself is probed.
func (h *HTTPScanner) Run(ctx context.Context) {
	start := time.Now()
	h.result = h.run(ctx)
	h.result.ScanTime = time.Since(start)
	h.hasResult = true
}

func (h *HTTPScanner) run(ctx context.Context) URIResult {
	base, err := url.Parse(h.baseURI)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return URIResult{Status: StatusError}
	}

	targets := h.targets()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	slots := make([]*Response, len(targets))
	failures := make([]bool, len(targets))
	limiter := newLimiter(h.settings.RateLimit)

	fanOut(ctx, len(targets), h.settings.threads(), limiter, func(ctx context.Context, i int) {
		status, err := h.probe(ctx, targets[i])
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			failures[i] = true
			status = ErrorStatus
		}
		slots[i] = &Response{URI: targets[i], Status: status}
	})

	result := URIResult{Status: StatusDone}
	attempted, failed := 0, 0
	for i, r := range slots {
		if r == nil {
			continue
		}
		attempted++
		if failures[i] {
			failed++
		}
		result.Responses = append(result.Responses, *r)
	}

	switch {
	case attempted < len(targets) && errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.Status = StatusTimeout
	case attempted > 0 && failed == attempted:
		result.Status = StatusError
	}
	return result
}

func (h *HTTPScanner) targets() []string {
	if len(h.words) == 0 {
		return []string{h.baseURI}
	}
	base := h.baseURI
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	targets := make([]string, len(h.words))
	for i, w := range h.words {
		targets[i] = base + strings.TrimLeft(w, "/")
	}
	return targets
}

func (h *HTTPScanner) probe(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, h.method.String(), target, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", h.settings.UserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.Status, nil
}
