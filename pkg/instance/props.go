package instance

// Props is the dynamic property bag attached to an element. Keys follow
// the host renderer's accessibility vocabulary ("role", "label", "hint",
// and so on). Typed accessors are preferred over direct map access so
// callers never depend on reflection or loose type assertions.
type Props map[string]any

// Accessibility property keys understood by the typed accessors.
const (
	PropRole        = "role"
	PropLegacyRole  = "accessibilityRole" // older hosts set this instead of "role"
	PropLabel       = "label"
	PropHint        = "hint"
	PropPlaceholder = "placeholder"
	PropValue       = "value"
	PropTestID      = "testID"
	PropDisabled    = "disabled"
	PropSelected    = "selected"
	PropChecked     = "checked"
	PropBusy        = "busy"
	PropExpanded    = "expanded"
	PropValueMin    = "valueMin"
	PropValueMax    = "valueMax"
	PropValueNow    = "valueNow"
	PropValueText   = "valueText"
	PropHidden      = "hidden"
	PropDisplay     = "display"
	PropImportant   = "importantForAccessibility"
)

// String returns the string value for key and whether it was set to a
// string.
func (p Props) String(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	s, ok := p[key].(string)
	return s, ok
}

// Bool returns the bool value for key and whether it was set to a bool.
func (p Props) Bool(key string) (bool, bool) {
	if p == nil {
		return false, false
	}
	b, ok := p[key].(bool)
	return b, ok
}

// Float returns the numeric value for key and whether it was set.
// Both float64 and int values are accepted.
func (p Props) Float(key string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case float32:
		return float64(v), true
	}
	return 0, false
}

// Role returns the accessibility role, consulting the legacy alias when
// the canonical key is absent.
func (p Props) Role() (string, bool) {
	if r, ok := p.String(PropRole); ok {
		return r, true
	}
	return p.String(PropLegacyRole)
}

// Label returns the accessibility label.
func (p Props) Label() (string, bool) { return p.String(PropLabel) }

// Hint returns the accessibility hint.
func (p Props) Hint() (string, bool) { return p.String(PropHint) }

// Placeholder returns the input placeholder text.
func (p Props) Placeholder() (string, bool) { return p.String(PropPlaceholder) }

// DisplayValue returns the current displayed value of an input.
func (p Props) DisplayValue() (string, bool) { return p.String(PropValue) }

// TestID returns the test identifier.
func (p Props) TestID() (string, bool) { return p.String(PropTestID) }

// CheckedState is the tri-state value of the "checked" prop.
type CheckedState int

const (
	// CheckedUnset means the prop was not provided.
	CheckedUnset CheckedState = iota
	// CheckedFalse means checked: false.
	CheckedFalse
	// CheckedTrue means checked: true.
	CheckedTrue
	// CheckedMixed means checked: "mixed".
	CheckedMixed
)

func (s CheckedState) String() string {
	switch s {
	case CheckedFalse:
		return "false"
	case CheckedTrue:
		return "true"
	case CheckedMixed:
		return "mixed"
	default:
		return "unset"
	}
}

// Checked returns the tri-state checked value. A string value other than
// "mixed" is treated as unset.
func (p Props) Checked() CheckedState {
	if p == nil {
		return CheckedUnset
	}
	switch v := p[PropChecked].(type) {
	case bool:
		if v {
			return CheckedTrue
		}
		return CheckedFalse
	case string:
		if v == "mixed" {
			return CheckedMixed
		}
	}
	return CheckedUnset
}
