// Package config loads the optional .lagoonrc.yaml file consulted by
// cmd/lagoon's run command, built on goccy/go-yaml (the teacher's own
// configuration-shaped dependency, otherwise unwired in the retrieved
// snapshot of that project).
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds the subset of CLI flags that .lagoonrc.yaml may default.
// typeCheck is deliberately absent: lagoon has no static type checker.
type Config struct {
	Debug       bool     `yaml:"debug"`
	SearchPaths []string `yaml:"searchPaths"`
}

const fileName = ".lagoonrc.yaml"

// Load walks up from dir looking for .lagoonrc.yaml, returning a zero
// Config (no error) if none is found.
func Load(dir string) (Config, error) {
	path, ok := findUpward(dir)
	if !ok {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func findUpward(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, fileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Merge overlays flag-provided values on top of cfg, with flags always
// winning when set: flagDebugSet reports whether --debug was given, and an
// empty flagSearchPaths means "not set".
func Merge(cfg Config, flagDebug bool, flagDebugSet bool, flagSearchPaths []string) Config {
	result := cfg
	if flagDebugSet {
		result.Debug = flagDebug
	}
	if len(flagSearchPaths) > 0 {
		result.SearchPaths = flagSearchPaths
	}
	return result
}
