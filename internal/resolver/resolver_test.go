package resolver

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	mdns "github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zone = map[string][]string{
	"www.example.com.": {
		"www.example.com. 60 IN A 10.0.0.1",
		"www.example.com. 60 IN A 10.0.0.2",
		"www.example.com. 60 IN AAAA 2001:db8::1",
	},
	"v6.example.com.": {
		"v6.example.com. 60 IN AAAA 2001:db8::6",
	},
	"empty.example.com.": {},
}

func startServer(t *testing.T) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	srv := &mdns.Server{
		PacketConn:        pc,
		NotifyStartedFunc: func() { close(started) },
		Handler: mdns.HandlerFunc(func(w mdns.ResponseWriter, req *mdns.Msg) {
			m := new(mdns.Msg)
			m.SetReply(req)
			q := req.Question[0]
			records, ok := zone[q.Name]
			if !ok {
				m.SetRcode(req, mdns.RcodeNameError)
				_ = w.WriteMsg(m)
				return
			}
			for _, s := range records {
				rr, err := mdns.NewRR(s)
				if err != nil || rr.Header().Rrtype != q.Qtype {
					continue
				}
				m.Answer = append(m.Answer, rr)
			}
			_ = w.WriteMsg(m)
		}),
	}
	go func() { _ = srv.ActivateAndServe() }()
	<-started
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestLookupHost(t *testing.T) {
	r, err := New([]string{startServer(t)}, time.Second)
	require.NoError(t, err)

	ips, err := r.LookupHost(context.Background(), "www.example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2", "2001:db8::1"}, ips)

	ips, err = r.LookupHost(context.Background(), "v6.example.com.")
	require.NoError(t, err)
	assert.Equal(t, []string{"2001:db8::6"}, ips)
}

func TestLookupHostNXDomain(t *testing.T) {
	r, err := New([]string{startServer(t)}, time.Second)
	require.NoError(t, err)

	_, err = r.LookupHost(context.Background(), "nothere.example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such host")
}

func TestLookupHostNoRecords(t *testing.T) {
	r, err := New([]string{startServer(t)}, time.Second)
	require.NoError(t, err)

	_, err = r.LookupHost(context.Background(), "empty.example.com")
	assert.True(t, errors.Is(err, ErrNoAddress))
}

func TestLookupHostFallsThroughDeadServer(t *testing.T) {
	dead, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	deadAddr := dead.LocalAddr().String()
	require.NoError(t, dead.Close())

	r, err := New([]string{deadAddr, startServer(t)}, 200*time.Millisecond)
	require.NoError(t, err)

	ips, err := r.LookupHost(context.Background(), "www.example.com")
	require.NoError(t, err)
	assert.Len(t, ips, 3)
}

func TestLookupHostCanceled(t *testing.T) {
	r, err := New([]string{startServer(t)}, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.LookupHost(ctx, "www.example.com")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewAddsDefaultPort(t *testing.T) {
	r, err := New([]string{"1.1.1.1", "9.9.9.9:5353", "2001:db8::53"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.1.1.1:53", "9.9.9.9:5353", "[2001:db8::53]:53"}, r.Servers())
}
