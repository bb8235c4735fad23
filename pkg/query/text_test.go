package query

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/probe/pkg/config"
	"github.com/go-drift/probe/pkg/instance"
	"github.com/go-drift/probe/pkg/textmatch"
)

func TestByText_JoinsAdjacentSegments(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Text", nil,
			instance.TextNode("Hello, "),
			instance.TextNode("world"),
		),
	))

	matches := All(tree, ByText(textmatch.S("Hello, world")))
	require.Len(t, matches, 1)
	assert.Equal(t, "Text", matches[0].Type())
}

func TestByText_JoinsNestedSpans(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Text", nil,
			instance.TextNode("Count: "),
			instance.El("Text", nil, instance.TextNode("42")),
		),
	))

	// The outer host owns the joined string; the inner span matches
	// its own content.
	assert.Len(t, All(tree, ByText(textmatch.S("Count: 42"))), 1)
	assert.Len(t, All(tree, ByText(textmatch.S("42"))), 1)
}

func TestByText_OnlyTextHostsMatch(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Banner", nil, instance.TextNode("Welcome")),
	))

	// Banner is not a registered text host.
	assert.Empty(t, All(tree, ByText(textmatch.S("Welcome"))))

	config.Configure(func(s *config.Settings) {
		s.TextComponentTypes = append(s.TextComponentTypes, "Banner")
	})
	assert.Len(t, All(tree, ByText(textmatch.S("Welcome"))), 1)
}

func TestByText_InexactAndPattern(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Text", nil, instance.TextNode("Hello World")),
	))

	assert.Empty(t, All(tree, ByText(textmatch.S("hello"))))
	assert.Len(t, All(tree, ByText(textmatch.S("hello"), Inexact())), 1)
	assert.Len(t, All(tree, ByText(textmatch.P(regexp.MustCompile(`^Hello`)))), 1)
}

func TestByLabelText(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Input", instance.Props{"label": "Email address"}),
	))

	assert.Len(t, All(tree, ByLabelText(textmatch.S("Email address"))), 1)
	assert.Empty(t, All(tree, ByLabelText(textmatch.S("Email"))))
	assert.Len(t, All(tree, ByLabelText(textmatch.S("email"), Inexact())), 1)
}

func TestByPlaceholderText(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Input", instance.Props{"placeholder": "Enter email"}),
	))

	assert.Len(t, All(tree, ByPlaceholderText(textmatch.S("Enter email"))), 1)
	assert.Empty(t, All(tree, ByPlaceholderText(textmatch.S("Enter name"))))
}

func TestByDisplayValue(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Input", instance.Props{"value": "jane@example.com"}),
	))

	assert.Len(t, All(tree, ByDisplayValue(textmatch.S("jane@example.com"))), 1)
}

func TestByHintText(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Button", instance.Props{"hint": "Saves the document"}),
	))

	assert.Len(t, All(tree, ByHintText(textmatch.S("Saves the document"))), 1)
}

func TestByTestID(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Button", instance.Props{"testID": "save-button"}),
		instance.El("Button", instance.Props{"testID": "cancel-button"}),
	))

	assert.Len(t, All(tree, ByTestID(textmatch.S("save-button"))), 1)
	assert.Len(t, All(tree, ByTestID(textmatch.P(regexp.MustCompile(`-button$`)))), 2)
}

func TestByType_Finder(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Button", nil),
		instance.El("Button", nil),
		instance.El("Input", nil),
	))

	assert.Len(t, All(tree, ByType("Button")), 2)
	assert.Equal(t, "ByType(Button)", ByType("Button").Description())
}

func TestByPredicate(t *testing.T) {
	resetConfig(t)
	tree := instance.Build(instance.El("View", nil,
		instance.El("Button", instance.Props{"testID": "a"}),
		instance.El("Input", instance.Props{"testID": "b"}),
	))

	f := ByPredicate(func(in instance.Instance) bool {
		_, ok := in.Props().TestID()
		return ok
	}, "has testID")
	assert.Len(t, All(tree, f), 2)
	assert.Equal(t, "has testID", f.Description())
}
