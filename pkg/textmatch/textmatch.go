// Package textmatch compares candidate strings against string-or-pattern
// targets with configurable normalization. All functions are pure.
package textmatch

import (
	"fmt"
	"regexp"
	"strings"
)

// TextMatch is either a literal string or a compiled pattern. Construct
// with S or P; the zero value matches nothing.
type TextMatch struct {
	str     string
	pattern *regexp.Regexp
	set     bool
}

// S returns a literal-string target.
func S(s string) TextMatch {
	return TextMatch{str: s, set: true}
}

// P returns a pattern target. A nil pattern matches nothing.
func P(re *regexp.Regexp) TextMatch {
	return TextMatch{pattern: re, set: re != nil}
}

// IsZero reports whether the target was left unset.
func (m TextMatch) IsZero() bool { return !m.set }

// IsPattern reports whether the target is a compiled pattern.
func (m TextMatch) IsPattern() bool { return m.pattern != nil }

// String returns a human-readable form for error messages.
func (m TextMatch) String() string {
	switch {
	case !m.set:
		return "<unset>"
	case m.pattern != nil:
		return fmt.Sprintf("/%s/", m.pattern.String())
	default:
		return fmt.Sprintf("%q", m.str)
	}
}

// Normalizer canonicalizes a candidate string before comparison.
type Normalizer func(string) string

// Options configures a single match.
type Options struct {
	// Exact requires case-sensitive full-string equality for literal
	// targets. Ignored for patterns. Callers that want the default
	// (true) should use DefaultOptions rather than a zero Options.
	Exact bool
	// Normalizer overrides the default whitespace normalizer.
	Normalizer Normalizer
}

// DefaultOptions returns the standard options: exact matching with the
// default whitespace normalizer.
func DefaultOptions() Options {
	return Options{Exact: true}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeWhitespace trims leading and trailing whitespace and collapses
// internal whitespace runs to a single space. This is the default
// normalizer applied to every candidate.
func NormalizeWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// NormalizerOptions tunes the composed normalizer returned by With.
type NormalizerOptions struct {
	// Trim removes leading/trailing whitespace.
	Trim bool
	// CollapseWhitespace collapses internal whitespace runs.
	CollapseWhitespace bool
}

// With returns a Normalizer applying the selected canonicalization steps.
// With both options false it returns the identity function.
func With(opts NormalizerOptions) Normalizer {
	return func(s string) string {
		if opts.Trim {
			s = strings.TrimSpace(s)
		}
		if opts.CollapseWhitespace {
			s = whitespaceRun.ReplaceAllString(s, " ")
		}
		return s
	}
}

// Matches reports whether candidate satisfies target under opts.
//
// The candidate is normalized first (custom normalizer if provided, else
// NormalizeWhitespace). Pattern targets are tested against the normalized
// candidate regardless of Exact. Literal targets require full-string
// equality when Exact, and case-insensitive substring containment
// otherwise.
func Matches(candidate string, target TextMatch, opts Options) bool {
	if !target.set {
		return false
	}

	norm := opts.Normalizer
	if norm == nil {
		norm = NormalizeWhitespace
	}
	candidate = norm(candidate)

	if target.pattern != nil {
		return target.pattern.MatchString(candidate)
	}
	if opts.Exact {
		return candidate == target.str
	}
	return strings.Contains(strings.ToLower(candidate), strings.ToLower(target.str))
}
