package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/reconscan/internal/engine"
	"github.com/hakim/reconscan/internal/models"
)

func TestSendCompletion(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := &Notifier{WebhookURL: srv.URL}
	err := n.SendCompletion(context.Background(), &RunResult{
		ScanID:   "abc",
		Mode:     models.ModeDomain,
		Target:   "example.com",
		Status:   engine.StatusTimeout,
		Findings: 4,
		ScanTime: 2500 * time.Millisecond,
		SavePath: "out.txt",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", got["scan_id"])
	assert.Equal(t, "domain", got["mode"])
	assert.Equal(t, "timeout", got["status"])
	assert.Equal(t, 4.0, got["findings"])
	assert.Equal(t, 2.5, got["elapsed_seconds"])
	assert.Equal(t, "out.txt", got["report_path"])
}

func TestSendCompletionNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := &Notifier{WebhookURL: srv.URL}
	err := n.SendCompletion(context.Background(), &RunResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSendCompletionDisabled(t *testing.T) {
	var n *Notifier
	assert.NoError(t, n.SendCompletion(context.Background(), &RunResult{}))
	assert.NoError(t, (&Notifier{}).SendCompletion(context.Background(), &RunResult{}))
}
