package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file written by WriteDefault and searched by Load.
const FileName = "reconscan.yaml"

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Threads:   50,
			UserAgent: "reconscan/1.0",
		},
		Resolver: ResolverConfig{
			Servers: []string{},
			Timeout: "5s",
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Scope: ScopeConfig{
			AllowedHosts: []string{},
			AllowedCIDRs: []string{},
		},
	}
}

// WriteDefault writes a default configuration into dir. An existing file is
// only replaced when force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return path, fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return path, fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return path, fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
