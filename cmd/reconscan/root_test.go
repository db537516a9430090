package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanFlagSet(t *testing.T, set map[string]string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for _, name := range []string{"uri", "domain", "timeout", "word", "method", "save"} {
		fs.String(name, "", "")
	}
	for k, v := range set {
		require.NoError(t, fs.Set(k, v))
	}
	return fs
}

func TestValidateFlags(t *testing.T) {
	words := filepath.Join(t.TempDir(), "common.txt")
	require.NoError(t, os.WriteFile(words, []byte("admin\n"), 0644))

	tests := []struct {
		name    string
		flags   map[string]string
		wantErr string
	}{
		{"no flags", nil, ""},
		{"uri scan", map[string]string{"uri": "http://192.168.1.8/xvwa/", "word": words, "method": "post", "timeout": "10000"}, ""},
		{"domain scan", map[string]string{"domain": "example.com", "save": "anything/at/all.txt"}, ""},
		{"bad uri", map[string]string{"uri": "192.168.1.8"}, "--uri"},
		{"bad domain", map[string]string{"domain": "localhost"}, "--domain"},
		{"zero timeout", map[string]string{"uri": "http://x/", "timeout": "0"}, "--timeout"},
		{"negative timeout", map[string]string{"uri": "http://x/", "timeout": "-5"}, "--timeout"},
		{"missing wordlist", map[string]string{"uri": "http://x/", "word": filepath.Join(t.TempDir(), "nope.txt")}, "--word"},
		{"bad method", map[string]string{"uri": "http://x/", "method": "PUT"}, "--method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFlags(scanFlagSet(t, tt.flags))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAppInfo(t *testing.T) {
	info := appInfo()
	assert.Equal(t, "reconscan", info.Name)
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.OS)
}

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["history"])
	assert.True(t, names["init"])
	assert.True(t, names["diff"])

	for _, f := range []string{"uri", "domain", "timeout", "word", "method", "save"} {
		fl := rootCmd.Flags().Lookup(f)
		require.NotNil(t, fl, f)
		assert.Equal(t, f[:1], fl.Shorthand)
	}
}
