package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/hakim/reconscan/internal/classify"
	"github.com/hakim/reconscan/internal/diff"
)

// Diff prints the delta between two runs of the same target.
func (c *Console) Diff(r *diff.Result) {
	c.banner("Scan Diff")
	fmt.Fprintf(c.w, "%sTarget: %s\n", c.settings.indent(1), r.Target)
	fmt.Fprintf(c.w, "%sPrevious: %s (%d)\n", c.settings.indent(1), r.PreviousID, r.PreviousCount)
	fmt.Fprintf(c.w, "%sCurrent: %s (%d)\n", c.settings.indent(1), r.CurrentID, r.CurrentCount)
	c.banner("")

	if r.Empty() {
		fmt.Fprintln(c.w, "No changes detected.")
		return
	}
	for _, item := range r.Added {
		fmt.Fprintf(c.w, "%s%s\n", c.settings.indent(1), c.paint(classify.Success, "+ "+item))
	}
	for _, item := range r.Removed {
		fmt.Fprintf(c.w, "%s%s\n", c.settings.indent(1), c.paint(classify.Failure, "- "+item))
	}
	fmt.Fprintf(c.w, "\nChange: %s (%d unchanged)\n", formatChange(len(r.Added), len(r.Removed)), r.Unchanged)
}

// WriteDiffReport writes the delta between two runs as markdown to path.
func WriteDiffReport(path string, r *diff.Result, now time.Time) error {
	var b strings.Builder

	b.WriteString("# Scan Diff Report\n\n")
	b.WriteString(fmt.Sprintf("**Target:** %s\n", r.Target))
	b.WriteString(fmt.Sprintf("**Date:** %s\n\n", now.UTC().Format("2006-01-02 15:04:05 UTC")))

	if r.Empty() {
		b.WriteString("No changes detected.\n")
		return writeFile(path, b.String())
	}

	b.WriteString("| Previous | Current | Change |\n")
	b.WriteString("|----------|---------|--------|\n")
	b.WriteString(fmt.Sprintf("| %d | %d | %s |\n\n", r.PreviousCount, r.CurrentCount, formatChange(len(r.Added), len(r.Removed))))

	writeItems(&b, "New", "+", r.Added)
	writeItems(&b, "Removed", "-", r.Removed)

	return writeFile(path, b.String())
}

func writeItems(b *strings.Builder, title, sign string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("## %s (%s%d)\n\n", title, sign, len(items)))
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- %s\n", item))
	}
	b.WriteString("\n")
}

func formatChange(added, removed int) string {
	if added == 0 && removed == 0 {
		return "none"
	}
	parts := make([]string, 0, 2)
	if added > 0 {
		parts = append(parts, fmt.Sprintf("+%d", added))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("-%d", removed))
	}
	return strings.Join(parts, " / ")
}
