package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier posts a completion summary to a webhook.
type Notifier struct {
	WebhookURL string // if empty, no notifications
	Client     *http.Client
}

// completionPayload is the JSON body posted to the webhook endpoint.
type completionPayload struct {
	ScanID         string  `json:"scan_id,omitempty"`
	Mode           string  `json:"mode"`
	Target         string  `json:"target"`
	Status         string  `json:"status"`
	Findings       int     `json:"findings"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	ReportPath     string  `json:"report_path,omitempty"`
}

// SendCompletion posts the run summary. It is a no-op without a webhook URL.
// Errors are meant to be reported as warnings.
func (n *Notifier) SendCompletion(ctx context.Context, result *RunResult) error {
	if n == nil || n.WebhookURL == "" {
		return nil
	}

	body, err := json.Marshal(completionPayload{
		ScanID:         result.ScanID,
		Mode:           string(result.Mode),
		Target:         result.Target,
		Status:         result.Status.String(),
		Findings:       result.Findings,
		ElapsedSeconds: result.ScanTime.Seconds(),
		ReportPath:     result.SavePath,
	})
	if err != nil {
		return fmt.Errorf("notify: marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: posting to %s: %w", n.WebhookURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify: webhook returned non-2xx status %d", resp.StatusCode)
	}

	return nil
}
