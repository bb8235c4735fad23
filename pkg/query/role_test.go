package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/probe/pkg/config"
	"github.com/go-drift/probe/pkg/instance"
	"github.com/go-drift/probe/pkg/textmatch"
)

func buttonTree(props instance.Props) *instance.Tree {
	merged := instance.Props{"role": "button"}
	for k, v := range props {
		merged[k] = v
	}
	return instance.Build(instance.El("View", nil,
		instance.El("Button", merged,
			instance.El("Text", nil, instance.TextNode("Save")),
		),
	))
}

func TestByRole_MatchesRole(t *testing.T) {
	resetConfig(t)
	tree := buttonTree(nil)

	matches := All(tree, ByRole(textmatch.S("button"), RoleOptions{}))
	require.Len(t, matches, 1)
	assert.Equal(t, "Button", matches[0].Type())

	assert.Empty(t, All(tree, ByRole(textmatch.S("link"), RoleOptions{})))
}

func TestByRole_LegacyAlias(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Heading", instance.Props{"accessibilityRole": "header"}),
	))

	matches := All(tree, ByRole(textmatch.S("header"), RoleOptions{}))
	assert.Len(t, matches, 1)
}

func TestByRole_DisabledWildcard(t *testing.T) {
	resetConfig(t)

	// disabled:false matches an instance whose disabled state is
	// undefined, but disabled:true does not.
	undefinedState := buttonTree(nil)
	assert.Len(t, All(undefinedState, ByRole(textmatch.S("button"), RoleOptions{Disabled: Bool(false)})), 1)
	assert.Empty(t, All(undefinedState, ByRole(textmatch.S("button"), RoleOptions{Disabled: Bool(true)})))

	explicitlyDisabled := buttonTree(instance.Props{"disabled": true})
	assert.Empty(t, All(explicitlyDisabled, ByRole(textmatch.S("button"), RoleOptions{Disabled: Bool(false)})))
	assert.Len(t, All(explicitlyDisabled, ByRole(textmatch.S("button"), RoleOptions{Disabled: Bool(true)})), 1)
}

func TestByRole_SelectedBusyExpanded(t *testing.T) {
	resetConfig(t)
	tree := buttonTree(instance.Props{"selected": true, "busy": false})

	assert.Len(t, All(tree, ByRole(textmatch.S("button"), RoleOptions{Selected: Bool(true)})), 1)
	assert.Len(t, All(tree, ByRole(textmatch.S("button"), RoleOptions{Busy: Bool(false)})), 1)
	assert.Empty(t, All(tree, ByRole(textmatch.S("button"), RoleOptions{Busy: Bool(true)})))
	// Expanded is undefined: false filter matches, true does not.
	assert.Len(t, All(tree, ByRole(textmatch.S("button"), RoleOptions{Expanded: Bool(false)})), 1)
	assert.Empty(t, All(tree, ByRole(textmatch.S("button"), RoleOptions{Expanded: Bool(true)})))
}

func TestByRole_Checked(t *testing.T) {
	resetConfig(t)
	checkbox := func(checked any) *instance.Tree {
		props := instance.Props{"role": "checkbox"}
		if checked != nil {
			props["checked"] = checked
		}
		return instance.Build(instance.El("View", nil, instance.El("Checkbox", props)))
	}

	role := textmatch.S("checkbox")
	assert.Len(t, All(checkbox(true), ByRole(role, RoleOptions{Checked: instance.CheckedTrue})), 1)
	assert.Empty(t, All(checkbox(false), ByRole(role, RoleOptions{Checked: instance.CheckedTrue})))
	assert.Len(t, All(checkbox("mixed"), ByRole(role, RoleOptions{Checked: instance.CheckedMixed})), 1)
	assert.Empty(t, All(checkbox(true), ByRole(role, RoleOptions{Checked: instance.CheckedMixed})))
	// Wildcard: checked=false also matches an undefined checked state.
	assert.Len(t, All(checkbox(nil), ByRole(role, RoleOptions{Checked: instance.CheckedFalse})), 1)
	assert.Len(t, All(checkbox(false), ByRole(role, RoleOptions{Checked: instance.CheckedFalse})), 1)
	assert.Empty(t, All(checkbox("mixed"), ByRole(role, RoleOptions{Checked: instance.CheckedFalse})))
}

func TestByRole_Value(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Slider", instance.Props{
			"role": "adjustable", "valueMin": 0.0, "valueMax": 100.0, "valueNow": 40.0, "valueText": "40 percent",
		}),
	))
	role := textmatch.S("adjustable")

	assert.Len(t, All(tree, ByRole(role, RoleOptions{Value: &ValueFilter{Now: Float(40)}})), 1)
	assert.Empty(t, All(tree, ByRole(role, RoleOptions{Value: &ValueFilter{Now: Float(50)}})))
	assert.Len(t, All(tree, ByRole(role, RoleOptions{Value: &ValueFilter{Min: Float(0), Max: Float(100)}})), 1)
	assert.Len(t, All(tree, ByRole(role, RoleOptions{Value: &ValueFilter{Text: textmatch.S("40 percent")}})), 1)
	assert.Empty(t, All(tree, ByRole(role, RoleOptions{Value: &ValueFilter{Text: textmatch.S("other")}})))
}

func TestByRole_NameFromLabel(t *testing.T) {
	resetConfig(t)
	tree := buttonTree(instance.Props{"label": "Save document"})

	assert.Len(t, All(tree, ByRole(textmatch.S("button"), RoleOptions{Name: textmatch.S("Save document")})), 1)
	assert.Empty(t, All(tree, ByRole(textmatch.S("button"), RoleOptions{Name: textmatch.S("Save")})))
}

func TestByRole_NameFallsBackToTextContent(t *testing.T) {
	resetConfig(t)
	tree := buttonTree(nil) // no label; content is "Save"

	assert.Len(t, All(tree, ByRole(textmatch.S("button"), RoleOptions{Name: textmatch.S("Save")})), 1)
}

func TestByRole_NameIgnoresHiddenText(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Button", instance.Props{"role": "button"},
			instance.El("Text", nil, instance.TextNode("Save")),
			instance.El("Text", instance.Props{"display": "none"}, instance.TextNode(" (hidden)")),
		),
	))

	assert.Len(t, All(tree, ByRole(textmatch.S("button"), RoleOptions{Name: textmatch.S("Save")})), 1)
}

func TestByRole_NameComputerOverride(t *testing.T) {
	resetConfig(t)
	tree := buttonTree(nil)

	custom := func(in instance.Instance) string { return "custom-name" }
	assert.Len(t, All(tree, ByRole(textmatch.S("button"), RoleOptions{
		Name:         textmatch.S("custom-name"),
		NameComputer: custom,
	})), 1)
}

func TestByRole_ProcessWideNameComputer(t *testing.T) {
	resetConfig(t)
	config.Configure(func(s *config.Settings) {
		s.AccessibleName = func(in instance.Instance) string { return "configured" }
	})
	tree := buttonTree(nil)

	assert.Len(t, All(tree, ByRole(textmatch.S("button"), RoleOptions{Name: textmatch.S("configured")})), 1)
}

func TestByRole_Description(t *testing.T) {
	resetConfig(t)
	f := ByRole(textmatch.S("button"), RoleOptions{Name: textmatch.S("Save"), Disabled: Bool(false)})
	desc := f.Description()
	assert.Contains(t, desc, "ByRole")
	assert.Contains(t, desc, `name="Save"`)
	assert.Contains(t, desc, "disabled=false")
}

func TestAccessibleName(t *testing.T) {
	resetConfig(t)
	labeled := buttonTree(instance.Props{"label": "From label"})
	assert.Equal(t, "From label", AccessibleName(labeled.Root().Children()[0]))

	unlabeled := buttonTree(nil)
	assert.Equal(t, "Save", AccessibleName(unlabeled.Root().Children()[0]))
}
