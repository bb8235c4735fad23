package query

import "github.com/go-drift/probe/pkg/instance"

// IsHiddenFromAccessibility reports whether in is excluded from the
// accessibility tree. An instance is hidden when it, or any ancestor,
// is explicitly hidden (hidden prop, display "none", or the
// no-hide-descendants marker), or when the instance itself opts out
// with importantForAccessibility "no". Pure read-only walk up the
// ancestor chain.
func IsHiddenFromAccessibility(in instance.Instance) bool {
	if !in.Valid() {
		return false
	}
	if important, ok := in.Props().String(instance.PropImportant); ok && important == "no" {
		return true
	}
	if hidesSubtree(in) {
		return true
	}
	hidden := false
	instance.Ancestors(in, func(a instance.Instance) bool {
		if hidesSubtree(a) {
			hidden = true
			return false
		}
		return true
	})
	return hidden
}

// hidesSubtree reports whether in hides itself and all descendants.
func hidesSubtree(in instance.Instance) bool {
	p := in.Props()
	if h, ok := p.Bool(instance.PropHidden); ok && h {
		return true
	}
	if d, ok := p.String(instance.PropDisplay); ok && d == "none" {
		return true
	}
	if important, ok := p.String(instance.PropImportant); ok && important == "no-hide-descendants" {
		return true
	}
	return false
}
