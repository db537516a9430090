package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/admin", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPScannerKeepsIssueOrder(t *testing.T) {
	srv := newTestServer(t)

	s, err := NewHTTPScanner(Settings{Threads: 4})
	require.NoError(t, err)
	s.SetBaseURI(srv.URL + "/")
	for _, w := range []string{"missing", "admin", "old", "nope"} {
		s.AddWord(w)
	}
	s.SetTimeout(10 * time.Second)
	s.Run(context.Background())

	res := s.Result()
	assert.Equal(t, StatusDone, res.Status)
	require.Len(t, res.Responses, 4)

	assert.Equal(t, srv.URL+"/missing", res.Responses[0].URI)
	assert.Equal(t, "404 Not Found", res.Responses[0].Status)
	assert.Equal(t, srv.URL+"/admin", res.Responses[1].URI)
	assert.Equal(t, "200 OK", res.Responses[1].Status)
	assert.Equal(t, "301 Moved Permanently", res.Responses[2].Status, "redirects are not followed by default")
	assert.Equal(t, srv.URL+"/nope", res.Responses[3].URI)
	assert.Greater(t, res.ScanTime, time.Duration(0))
}

func TestHTTPScannerFollowRedirects(t *testing.T) {
	srv := newTestServer(t)

	s, err := NewHTTPScanner(Settings{FollowRedirects: true})
	require.NoError(t, err)
	s.SetBaseURI(srv.URL)
	s.AddWord("old")
	s.Run(context.Background())

	res := s.Result()
	require.Len(t, res.Responses, 1)
	assert.Equal(t, srv.URL+"/old", res.Responses[0].URI)
	assert.Equal(t, "200 OK", res.Responses[0].Status)
}

func TestHTTPScannerMethod(t *testing.T) {
	srv := newTestServer(t)

	for _, tt := range []struct {
		method Method
		want   string
	}{
		{MethodGet, "405 Method Not Allowed"},
		{MethodPost, "200 OK"},
	} {
		t.Run(tt.method.String(), func(t *testing.T) {
			s, err := NewHTTPScanner(Settings{})
			require.NoError(t, err)
			s.SetBaseURI(srv.URL + "/")
			s.SetMethod(tt.method)
			s.AddWord("login")
			s.Run(context.Background())

			res := s.Result()
			require.Len(t, res.Responses, 1)
			assert.Equal(t, tt.want, res.Responses[0].Status)
		})
	}
}

func TestHTTPScannerNoWordsProbesBase(t *testing.T) {
	srv := newTestServer(t)

	s, err := NewHTTPScanner(Settings{})
	require.NoError(t, err)
	s.SetBaseURI(srv.URL + "/")
	s.Run(context.Background())

	res := s.Result()
	assert.Equal(t, StatusDone, res.Status)
	require.Len(t, res.Responses, 1)
	assert.Equal(t, srv.URL+"/", res.Responses[0].URI)
	assert.Equal(t, "200 OK", res.Responses[0].Status)
}

func TestHTTPScannerUserAgent(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.UserAgent())
	}))
	defer srv.Close()

	s, err := NewHTTPScanner(Settings{UserAgent: "probe/2"})
	require.NoError(t, err)
	s.SetBaseURI(srv.URL + "/")
	s.Run(context.Background())

	assert.Equal(t, "probe/2", got.Load())
}

func TestHTTPScannerTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	s, err := NewHTTPScanner(Settings{Threads: 1})
	require.NoError(t, err)
	s.SetBaseURI(srv.URL + "/")
	s.AddWord("a")
	s.AddWord("b")
	s.SetTimeout(100 * time.Millisecond)
	s.Run(context.Background())

	res := s.Result()
	assert.Equal(t, StatusTimeout, res.Status)
	assert.Empty(t, res.Responses)
}

func TestHTTPScannerTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s, err := NewHTTPScanner(Settings{})
	require.NoError(t, err)
	s.SetBaseURI(url + "/")
	s.AddWord("a")
	s.Run(context.Background())

	res := s.Result()
	assert.Equal(t, StatusError, res.Status)
	require.Len(t, res.Responses, 1)
	assert.Equal(t, ErrorStatus, res.Responses[0].Status)
}

func TestHTTPScannerInvalidBase(t *testing.T) {
	s, err := NewHTTPScanner(Settings{})
	require.NoError(t, err)
	s.SetBaseURI("not a uri")
	s.AddWord("a")
	s.Run(context.Background())

	assert.Equal(t, StatusError, s.Result().Status)
}

func TestHTTPScannerResultBeforeRun(t *testing.T) {
	s, err := NewHTTPScanner(Settings{})
	require.NoError(t, err)
	assert.Equal(t, StatusError, s.Result().Status)
}

func TestHTTPScannerResultIsStable(t *testing.T) {
	srv := newTestServer(t)

	s, err := NewHTTPScanner(Settings{})
	require.NoError(t, err)
	s.SetBaseURI(srv.URL + "/")
	s.AddWord("admin")
	s.Run(context.Background())

	first := s.Result()
	first.Responses[0].Status = "mutated"
	assert.Equal(t, "200 OK", s.Result().Responses[0].Status)
}

func TestNewHTTPScannerBadProxy(t *testing.T) {
	_, err := NewHTTPScanner(Settings{Proxy: "::bad"})
	assert.Error(t, err)

	_, err = NewHTTPScanner(Settings{Proxy: "localhost"})
	assert.Error(t, err)

	_, err = NewHTTPScanner(Settings{Proxy: "http://127.0.0.1:8080"})
	assert.NoError(t, err)
}
