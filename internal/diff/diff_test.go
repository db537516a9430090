package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/reconscan/internal/models"
)

func run(id string, mode models.ScanMode, status models.RunStatus, found ...string) *models.ScanRecord {
	return &models.ScanRecord{ID: id, Mode: mode, Target: "example.com", Status: status, Found: found}
}

func TestCompare(t *testing.T) {
	prev := run("p", models.ModeDomain, models.StatusComplete, "www.example.com", "old.example.com", "mail.example.com")
	curr := run("c", models.ModeDomain, models.StatusComplete, "www.example.com", "mail.example.com", "dev.example.com", "api.example.com")

	res := Compare(curr, prev)
	assert.Equal(t, "example.com", res.Target)
	assert.Equal(t, "c", res.CurrentID)
	assert.Equal(t, "p", res.PreviousID)
	assert.Equal(t, []string{"dev.example.com", "api.example.com"}, res.Added)
	assert.Equal(t, []string{"old.example.com"}, res.Removed)
	assert.Equal(t, 2, res.Unchanged)
	assert.Equal(t, 4, res.CurrentCount)
	assert.Equal(t, 3, res.PreviousCount)
	assert.False(t, res.Empty())
}

func TestCompareNoChanges(t *testing.T) {
	a := run("a", models.ModeURI, models.StatusComplete, "http://x/admin")
	b := run("b", models.ModeURI, models.StatusComplete, "http://x/admin")

	res := Compare(a, b)
	assert.True(t, res.Empty())
	assert.NotNil(t, res.Added)
	assert.NotNil(t, res.Removed)
	assert.Equal(t, 1, res.Unchanged)
}

func TestCompareWithoutPrevious(t *testing.T) {
	res := Compare(run("c", models.ModeURI, models.StatusComplete, "http://x/a", "http://x/b"), nil)
	assert.Equal(t, []string{"http://x/a", "http://x/b"}, res.Added)
	assert.Empty(t, res.Removed)
	assert.Empty(t, res.PreviousID)
}

func TestLatest(t *testing.T) {
	runs := []*models.ScanRecord{
		run("running", models.ModeDomain, models.StatusRunning),
		run("newest", models.ModeDomain, models.StatusComplete),
		run("failed", models.ModeDomain, models.StatusFailed),
		run("uri", models.ModeURI, models.StatusComplete),
		run("older", models.ModeDomain, models.StatusComplete),
		run("oldest", models.ModeDomain, models.StatusComplete),
	}

	curr, prev, err := Latest(runs)
	require.NoError(t, err)
	assert.Equal(t, "newest", curr.ID)
	assert.Equal(t, "older", prev.ID)
}

func TestLatestNotEnoughRuns(t *testing.T) {
	_, _, err := Latest([]*models.ScanRecord{
		run("a", models.ModeURI, models.StatusComplete),
		run("b", models.ModeURI, models.StatusFailed),
	})
	assert.ErrorIs(t, err, ErrNotEnoughRuns)

	_, _, err = Latest(nil)
	assert.ErrorIs(t, err, ErrNotEnoughRuns)
}
