package query

import (
	"fmt"
	"strings"

	"github.com/go-drift/probe/pkg/instance"
	"github.com/go-drift/probe/pkg/textmatch"
)

// RoleOptions filter a role query beyond the role itself. Nil pointer
// fields mean "no filter".
//
// State filters follow the wildcard compatibility rule: a filter of
// false also matches an instance whose state prop is undefined, since
// hosts rarely spell out default states. A filter of true requires the
// state to be explicitly set.
type RoleOptions struct {
	// Name filters by computed accessible name.
	Name textmatch.TextMatch
	// Disabled filters by the disabled state.
	Disabled *bool
	// Selected filters by the selected state.
	Selected *bool
	// Busy filters by the busy state.
	Busy *bool
	// Expanded filters by the expanded state.
	Expanded *bool
	// Checked filters by the tri-state checked value. CheckedUnset
	// means no filter.
	Checked instance.CheckedState
	// Value filters by the numeric/text value of range controls.
	Value *ValueFilter
	// NameComputer overrides the accessible-name computation for this
	// call only.
	NameComputer func(instance.Instance) string
}

// ValueFilter matches the value props of range controls by equality.
type ValueFilter struct {
	Min  *float64
	Max  *float64
	Now  *float64
	Text textmatch.TextMatch
}

// Bool returns a pointer to b, for use in RoleOptions literals.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f, for use in ValueFilter literals.
func Float(f float64) *float64 { return &f }

// ByRole returns a finder matching instances whose accessibility role
// (or its legacy alias) satisfies role, narrowed by ro.
func ByRole(role textmatch.TextMatch, ro RoleOptions, opts ...MatchOption) Finder {
	mc := newMatchConfig(opts)
	nameComputer := ro.NameComputer
	if nameComputer == nil {
		nameComputer = mc.settings.AccessibleName
	}
	if nameComputer == nil {
		nameComputer = AccessibleName
	}

	return &finderFunc{
		fn: func(in instance.Instance) bool {
			actual, ok := in.Props().Role()
			if !ok {
				return false
			}
			if !textmatch.Matches(actual, role, mc.textOptions()) {
				return false
			}
			if !mc.admits(in) {
				return false
			}
			if !matchStates(in, ro) {
				return false
			}
			if !ro.Name.IsZero() {
				if !textmatch.Matches(nameComputer(in), ro.Name, mc.textOptions()) {
					return false
				}
			}
			return true
		},
		desc: describeRole(role, ro),
	}
}

func matchStates(in instance.Instance, ro RoleOptions) bool {
	p := in.Props()
	if !matchBoolState(ro.Disabled, p, instance.PropDisabled) {
		return false
	}
	if !matchBoolState(ro.Selected, p, instance.PropSelected) {
		return false
	}
	if !matchBoolState(ro.Busy, p, instance.PropBusy) {
		return false
	}
	if !matchBoolState(ro.Expanded, p, instance.PropExpanded) {
		return false
	}
	if ro.Checked != instance.CheckedUnset {
		actual := p.Checked()
		if ro.Checked == instance.CheckedFalse {
			// Wildcard rule: an undefined checked state also counts
			// as unchecked.
			if actual != instance.CheckedFalse && actual != instance.CheckedUnset {
				return false
			}
		} else if actual != ro.Checked {
			return false
		}
	}
	if ro.Value != nil && !matchValue(in, ro.Value) {
		return false
	}
	return true
}

// matchBoolState applies the wildcard rule for a *bool state filter.
func matchBoolState(filter *bool, p instance.Props, key string) bool {
	if filter == nil {
		return true
	}
	actual, defined := p.Bool(key)
	if *filter {
		return defined && actual
	}
	return !defined || !actual
}

func matchValue(in instance.Instance, vf *ValueFilter) bool {
	p := in.Props()
	if vf.Min != nil {
		if v, ok := p.Float(instance.PropValueMin); !ok || v != *vf.Min {
			return false
		}
	}
	if vf.Max != nil {
		if v, ok := p.Float(instance.PropValueMax); !ok || v != *vf.Max {
			return false
		}
	}
	if vf.Now != nil {
		if v, ok := p.Float(instance.PropValueNow); !ok || v != *vf.Now {
			return false
		}
	}
	if !vf.Text.IsZero() {
		v, ok := p.String(instance.PropValueText)
		if !ok || !textmatch.Matches(v, vf.Text, textmatch.DefaultOptions()) {
			return false
		}
	}
	return true
}

// AccessibleName computes the default accessible name of an instance:
// the label prop when set and non-empty, otherwise the joined visible
// text content of its subtree.
func AccessibleName(in instance.Instance) string {
	if label, ok := in.Props().Label(); ok && label != "" {
		return label
	}
	return joinedVisibleText(in)
}

// joinedVisibleText concatenates the raw text segments of the subtree,
// skipping any subtree that is itself hidden from accessibility.
func joinedVisibleText(root instance.Instance) string {
	var b strings.Builder
	var visit func(in instance.Instance)
	visit = func(in instance.Instance) {
		if in.IsText() {
			b.WriteString(in.Text())
			return
		}
		if hidesSubtree(in) {
			return
		}
		in.VisitChildren(func(c instance.Instance) bool {
			visit(c)
			return true
		})
	}
	visit(root)
	return b.String()
}

func describeRole(role textmatch.TextMatch, ro RoleOptions) string {
	var parts []string
	if !ro.Name.IsZero() {
		parts = append(parts, fmt.Sprintf("name=%s", ro.Name))
	}
	appendBool := func(name string, f *bool) {
		if f != nil {
			parts = append(parts, fmt.Sprintf("%s=%v", name, *f))
		}
	}
	appendBool("disabled", ro.Disabled)
	appendBool("selected", ro.Selected)
	appendBool("busy", ro.Busy)
	appendBool("expanded", ro.Expanded)
	if ro.Checked != instance.CheckedUnset {
		parts = append(parts, fmt.Sprintf("checked=%s", ro.Checked))
	}
	if ro.Value != nil {
		parts = append(parts, "value={...}")
	}
	if len(parts) == 0 {
		return fmt.Sprintf("ByRole(%s)", role)
	}
	return fmt.Sprintf("ByRole(%s, %s)", role, strings.Join(parts, ", "))
}
