package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWordlist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordlist.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTrailingNewline(t *testing.T) {
	words, err := Load(writeWordlist(t, "a\nb\nc\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, words)
}

func TestLoadTrimsAndSkipsBlank(t *testing.T) {
	words, err := Load(writeWordlist(t, "  admin \r\n\n\nlogin\r\n   \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "login"}, words)
}

func TestLoadKeepsOrderAndDuplicates(t *testing.T) {
	words, err := Load(writeWordlist(t, "zeta\nalpha\nzeta\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "zeta"}, words)
}

func TestLoadEmptyFile(t *testing.T) {
	words, err := Load(writeWordlist(t, ""))
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
