package models

import (
	"time"

	"github.com/google/uuid"
)

// ScanRecord is the history entry kept for one scan run
type ScanRecord struct {
	ID          string        `json:"id"`
	Mode        ScanMode      `json:"mode"`
	Target      string        `json:"target"`
	Wordlist    string        `json:"wordlist,omitempty"`
	Method      string        `json:"method,omitempty"`
	SavePath    string        `json:"save_path,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Status      RunStatus     `json:"status"`
	Outcome     string        `json:"outcome,omitempty"`
	Findings    int           `json:"findings"`
	Found       []string      `json:"found,omitempty"`
	ScanTime    time.Duration `json:"scan_time"`
	Error       string        `json:"error,omitempty"`
}

// NewScanRecord creates a pending record with a fresh ID
func NewScanRecord(mode ScanMode, target string) *ScanRecord {
	return &ScanRecord{
		ID:        uuid.New().String(),
		Mode:      mode,
		Target:    target,
		StartedAt: time.Now(),
		Status:    StatusPending,
	}
}
