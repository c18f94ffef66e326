// Package config loads the optional adocfix.toml manifest that tunes the
// rule engine per documentation project.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/rolfedh/adocfix/internal/diag"
	"github.com/rolfedh/adocfix/internal/rules"
)

// ManifestName is looked up in the target directory and its parents.
const ManifestName = "adocfix.toml"

// Config mirrors the manifest layout.
type Config struct {
	Rules     rulesSection     `toml:"rules"`
	Conref    conrefSection    `toml:"conref"`
	Procedure procedureSection `toml:"procedure"`
}

type rulesSection struct {
	// Disabled lists rule identifiers like "CNR300".
	Disabled []string `toml:"disabled"`
}

type conrefSection struct {
	ExtraVerbs []string `toml:"extra_verbs"`
}

type procedureSection struct {
	ExtraTrailingTitles []string `toml:"extra_trailing_titles"`
}

// Find walks from startDir to the filesystem root looking for the
// manifest. ok is false when no manifest exists; that is not an error.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}

// Discover combines Find and Load; with no manifest it returns the zero
// Config.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Config{}, err
	}
	return Load(path)
}

// EngineOptions translates the manifest into rule engine options.
// Unrecognised rule identifiers are reported, not ignored.
func (c Config) EngineOptions() (rules.Options, error) {
	opts := rules.Options{
		ExtraVerbs:          c.Conref.ExtraVerbs,
		ExtraTrailingTitles: c.Procedure.ExtraTrailingTitles,
	}
	if len(c.Rules.Disabled) > 0 {
		opts.Disabled = make(map[diag.Code]bool, len(c.Rules.Disabled))
		for _, id := range c.Rules.Disabled {
			code, ok := diag.ParseID(id)
			if !ok {
				return rules.Options{}, fmt.Errorf("unknown rule id %q in [rules].disabled", id)
			}
			opts.Disabled[code] = true
		}
	}
	return opts, nil
}
