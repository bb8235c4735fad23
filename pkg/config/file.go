package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// File represents the optional probe.yaml configuration.
type File struct {
	// AsyncTimeoutMS overrides Settings.AsyncTimeout, in milliseconds.
	AsyncTimeoutMS int `yaml:"asyncTimeoutMs,omitempty"`
	// AsyncIntervalMS overrides Settings.AsyncInterval, in milliseconds.
	AsyncIntervalMS int `yaml:"asyncIntervalMs,omitempty"`
	// IncludeHidden overrides Settings.IncludeHiddenElements.
	IncludeHidden *bool `yaml:"includeHiddenElements,omitempty"`
	// TextTypes overrides Settings.TextComponentTypes.
	TextTypes []string `yaml:"textComponentTypes,omitempty"`
	// DebugMaxDepth overrides Settings.Debug.MaxDepth.
	DebugMaxDepth int `yaml:"debugMaxDepth,omitempty"`
}

// LoadOptional reads probe.yaml from dir if present. A missing file is
// not an error and yields an empty File.
func LoadOptional(dir string) (*File, error) {
	path := filepath.Join(dir, "probe.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read probe.yaml: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse probe.yaml: %w", err)
	}
	return &f, nil
}

// Apply writes the file's overrides into s. Unset fields leave s alone.
func (f *File) Apply(s *Settings) {
	if f == nil {
		return
	}
	if f.AsyncTimeoutMS > 0 {
		s.AsyncTimeout = time.Duration(f.AsyncTimeoutMS) * time.Millisecond
	}
	if f.AsyncIntervalMS > 0 {
		s.AsyncInterval = time.Duration(f.AsyncIntervalMS) * time.Millisecond
	}
	if f.IncludeHidden != nil {
		s.IncludeHiddenElements = *f.IncludeHidden
	}
	if len(f.TextTypes) > 0 {
		s.TextComponentTypes = append([]string(nil), f.TextTypes...)
	}
	if f.DebugMaxDepth > 0 {
		s.Debug.MaxDepth = f.DebugMaxDepth
	}
}

// Project describes the host module a probe.yaml belongs to.
type Project struct {
	// Root is the directory containing go.mod.
	Root string
	// ModulePath is the module path declared in go.mod.
	ModulePath string
}

// ResolveProject walks upward from dir to the enclosing Go module and
// returns its root and module path. Used by the snapshot CLI to anchor
// relative snapshot paths and by diagnostics.
func ResolveProject(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for d := abs; ; {
		gomod := filepath.Join(d, "go.mod")
		data, err := os.ReadFile(gomod)
		if err == nil {
			mf, err := modfile.ParseLax(gomod, data, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", gomod, err)
			}
			if mf.Module == nil {
				return nil, fmt.Errorf("%s has no module directive", gomod)
			}
			return &Project{Root: d, ModulePath: mf.Module.Mod.Path}, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		parent := filepath.Dir(d)
		if parent == d {
			return nil, fmt.Errorf("no go.mod found above %s", abs)
		}
		d = parent
	}
}

// LoadProject resolves the enclosing module and applies its probe.yaml
// (if any) to the process-wide settings.
func LoadProject(dir string) (*Project, error) {
	proj, err := ResolveProject(dir)
	if err != nil {
		return nil, err
	}
	f, err := LoadOptional(proj.Root)
	if err != nil {
		return nil, err
	}
	Configure(f.Apply)
	return proj, nil
}
