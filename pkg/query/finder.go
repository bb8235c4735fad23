// Package query implements predicate builders and the tree query engine:
// finders locate instances in a rendered tree, and the engine enforces
// each variant's cardinality contract.
package query

import (
	"github.com/go-drift/probe/pkg/config"
	"github.com/go-drift/probe/pkg/instance"
	"github.com/go-drift/probe/pkg/textmatch"
)

// Finder locates instances in the rendered tree.
type Finder interface {
	// Evaluate returns all matching instances under root, depth-first
	// pre-order.
	Evaluate(root instance.Instance) []instance.Instance
	// Description returns a human-readable description for error
	// messages.
	Description() string
}

// MatchConfig is the resolved per-call matching configuration. It is
// assembled from the process-wide defaults at builder-call time and then
// adjusted by MatchOptions.
type MatchConfig struct {
	// Exact requires case-sensitive full-string equality for literal
	// text targets. Defaults to true.
	Exact bool
	// Normalizer overrides the default whitespace normalizer.
	Normalizer textmatch.Normalizer
	// IncludeHidden includes elements hidden from accessibility.
	// Defaults to the configured process-wide value.
	IncludeHidden bool

	settings config.Settings
}

// MatchOption adjusts the matching configuration of a single builder call.
type MatchOption func(*MatchConfig)

// Inexact switches literal text matching to case-insensitive substring
// containment.
func Inexact() MatchOption {
	return func(mc *MatchConfig) { mc.Exact = false }
}

// WithNormalizer replaces the default whitespace normalizer.
func WithNormalizer(n textmatch.Normalizer) MatchOption {
	return func(mc *MatchConfig) { mc.Normalizer = n }
}

// IncludeHidden makes the query match elements hidden from accessibility.
func IncludeHidden() MatchOption {
	return func(mc *MatchConfig) { mc.IncludeHidden = true }
}

// ExcludeHidden restores hidden-element filtering for a single call when
// the process-wide default includes hidden elements.
func ExcludeHidden() MatchOption {
	return func(mc *MatchConfig) { mc.IncludeHidden = false }
}

func newMatchConfig(opts []MatchOption) MatchConfig {
	s := config.Snapshot()
	mc := MatchConfig{
		Exact:         true,
		IncludeHidden: s.IncludeHiddenElements,
		settings:      s,
	}
	for _, o := range opts {
		o(&mc)
	}
	return mc
}

func (mc MatchConfig) textOptions() textmatch.Options {
	return textmatch.Options{Exact: mc.Exact, Normalizer: mc.Normalizer}
}

// admits applies the visibility contract shared by every builder: an
// instance is eligible when hidden elements are included or the instance
// is not hidden from accessibility.
func (mc MatchConfig) admits(in instance.Instance) bool {
	return mc.IncludeHidden || !IsHiddenFromAccessibility(in)
}

// finderFunc is the concrete Finder produced by the builders.
type finderFunc struct {
	fn   func(instance.Instance) bool
	desc string
}

func (f *finderFunc) Evaluate(root instance.Instance) []instance.Instance {
	return Collect(root, f.fn)
}

func (f *finderFunc) Description() string { return f.desc }

// ByPredicate returns a finder matching element instances that satisfy
// fn. desc is used in error messages.
func ByPredicate(fn func(instance.Instance) bool, desc string) Finder {
	if desc == "" {
		desc = "ByPredicate(...)"
	}
	return &finderFunc{fn: fn, desc: desc}
}

// ByType returns a finder matching element instances of the given
// component type.
func ByType(typ string, opts ...MatchOption) Finder {
	mc := newMatchConfig(opts)
	return &finderFunc{
		fn: func(in instance.Instance) bool {
			return in.Type() == typ && mc.admits(in)
		},
		desc: "ByType(" + typ + ")",
	}
}

// Collect traverses the tree depth-first pre-order from root and returns
// the element instances satisfying predicate, in traversal order. Raw
// text segments are never candidates.
func Collect(root instance.Instance, predicate func(instance.Instance) bool) []instance.Instance {
	var results []instance.Instance
	instance.Walk(root, func(in instance.Instance) bool {
		if !in.IsText() && predicate(in) {
			results = append(results, in)
		}
		return true
	})
	return results
}
