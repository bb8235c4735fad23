package query

import (
	"fmt"

	"github.com/go-drift/probe/pkg/instance"
	"github.com/go-drift/probe/pkg/textmatch"
)

// ByText returns a finder matching text hosts whose joined text content
// satisfies target. Which component types count as text hosts is
// configured process-wide (default "Text"); the candidate string is the
// concatenation of every raw text segment in the host's subtree, in
// render order.
func ByText(target textmatch.TextMatch, opts ...MatchOption) Finder {
	mc := newMatchConfig(opts)
	return &finderFunc{
		fn: func(in instance.Instance) bool {
			if !mc.settings.IsTextComponent(in.Type()) {
				return false
			}
			if !mc.admits(in) {
				return false
			}
			return textmatch.Matches(in.JoinedText(), target, mc.textOptions())
		},
		desc: fmt.Sprintf("ByText(%s)", target),
	}
}

// ByLabelText returns a finder matching instances whose accessibility
// label satisfies target.
func ByLabelText(target textmatch.TextMatch, opts ...MatchOption) Finder {
	return byProp("ByLabelText", instance.Props.Label, target, opts)
}

// ByPlaceholderText returns a finder matching instances whose
// placeholder satisfies target.
func ByPlaceholderText(target textmatch.TextMatch, opts ...MatchOption) Finder {
	return byProp("ByPlaceholderText", instance.Props.Placeholder, target, opts)
}

// ByDisplayValue returns a finder matching input instances whose current
// displayed value satisfies target.
func ByDisplayValue(target textmatch.TextMatch, opts ...MatchOption) Finder {
	return byProp("ByDisplayValue", instance.Props.DisplayValue, target, opts)
}

// ByHintText returns a finder matching instances whose accessibility
// hint satisfies target.
func ByHintText(target textmatch.TextMatch, opts ...MatchOption) Finder {
	return byProp("ByHintText", instance.Props.Hint, target, opts)
}

// ByTestID returns a finder matching instances whose test identifier
// satisfies target.
func ByTestID(target textmatch.TextMatch, opts ...MatchOption) Finder {
	return byProp("ByTestID", instance.Props.TestID, target, opts)
}

// byProp builds the shared attribute-lookup-plus-matcher finder.
func byProp(name string, get func(instance.Props) (string, bool), target textmatch.TextMatch, opts []MatchOption) Finder {
	mc := newMatchConfig(opts)
	return &finderFunc{
		fn: func(in instance.Instance) bool {
			v, ok := get(in.Props())
			if !ok {
				return false
			}
			if !mc.admits(in) {
				return false
			}
			return textmatch.Matches(v, target, mc.textOptions())
		},
		desc: fmt.Sprintf("%s(%s)", name, target),
	}
}
