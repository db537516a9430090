package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/reconscan/internal/diff"
)

func sampleDiff() *diff.Result {
	return &diff.Result{
		Target:        "example.com",
		CurrentID:     "cur",
		PreviousID:    "prev",
		Added:         []string{"dev.example.com"},
		Removed:       []string{"old.example.com", "ftp.example.com"},
		Unchanged:     3,
		CurrentCount:  4,
		PreviousCount: 5,
	}
}

func TestConsoleDiff(t *testing.T) {
	var out bytes.Buffer
	NewConsole(&out, DefaultSettings(), true).Diff(sampleDiff())

	s := out.String()
	assert.Contains(t, s, "    Target: example.com\n")
	assert.Contains(t, s, "    Previous: prev (5)\n")
	assert.Contains(t, s, "    + dev.example.com\n")
	assert.Contains(t, s, "    - old.example.com\n    - ftp.example.com\n")
	assert.Contains(t, s, "Change: +1 / -2 (3 unchanged)\n")
}

func TestConsoleDiffEmpty(t *testing.T) {
	var out bytes.Buffer
	NewConsole(&out, DefaultSettings(), true).Diff(&diff.Result{Target: "example.com"})
	assert.Contains(t, out.String(), "No changes detected.\n")
}

func TestWriteDiffReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diff.md")
	now := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

	require.NoError(t, WriteDiffReport(path, sampleDiff(), now))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Scan Diff Report\n\n"+
		"**Target:** example.com\n"+
		"**Date:** 2026-10-19 08:30:00 UTC\n\n"+
		"| Previous | Current | Change |\n"+
		"|----------|---------|--------|\n"+
		"| 5 | 4 | +1 / -2 |\n\n"+
		"## New (+1)\n\n- dev.example.com\n\n"+
		"## Removed (-2)\n\n- old.example.com\n- ftp.example.com\n\n", string(data))
}

func TestWriteDiffReportNoChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diff.md")
	require.NoError(t, WriteDiffReport(path, &diff.Result{Target: "x"}, time.Now()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No changes detected.\n")
}
