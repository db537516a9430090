// Package diff computes the delta between two recorded runs of the same
// target. Each run carries the list of items it found: 2xx URIs for URI scans
// and resolved host names for domain scans.
package diff

import (
	"errors"

	"github.com/hakim/reconscan/internal/models"
)

// ErrNotEnoughRuns is returned by Latest when fewer than two completed runs
// exist for a target.
var ErrNotEnoughRuns = errors.New("need at least two completed runs to compare")

// Result holds the delta between a current and a previous run. Added and
// Removed keep the order in which the items were found and are never nil.
type Result struct {
	Target     string
	CurrentID  string
	PreviousID string

	Added     []string
	Removed   []string
	Unchanged int

	CurrentCount  int
	PreviousCount int
}

// Empty reports whether nothing changed between the two runs.
func (r *Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0
}

// Compare calculates the delta between current and previous. A nil previous
// is treated as a run that found nothing.
func Compare(current, previous *models.ScanRecord) *Result {
	if previous == nil {
		previous = &models.ScanRecord{}
	}

	res := &Result{
		Target:        current.Target,
		CurrentID:     current.ID,
		PreviousID:    previous.ID,
		Added:         []string{},
		Removed:       []string{},
		CurrentCount:  len(current.Found),
		PreviousCount: len(previous.Found),
	}

	prev := toSet(previous.Found)
	curr := toSet(current.Found)

	for _, item := range current.Found {
		if _, ok := prev[item]; ok {
			res.Unchanged++
			continue
		}
		res.Added = append(res.Added, item)
	}
	for _, item := range previous.Found {
		if _, ok := curr[item]; !ok {
			res.Removed = append(res.Removed, item)
		}
	}

	return res
}

// Latest picks the two newest completed runs of a single mode from runs, which
// must be ordered newest first as returned by the history store. The mode is
// taken from the newest completed run.
func Latest(runs []*models.ScanRecord) (current, previous *models.ScanRecord, err error) {
	for _, r := range runs {
		if r.Status != models.StatusComplete {
			continue
		}
		switch {
		case current == nil:
			current = r
		case r.Mode == current.Mode:
			return current, r, nil
		}
	}
	return nil, nil, ErrNotEnoughRuns
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
