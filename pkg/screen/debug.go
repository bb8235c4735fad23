package screen

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/go-drift/probe/pkg/config"
	"github.com/go-drift/probe/pkg/instance"
)

// Colors used by the debug dump. These respect color.NoColor, so output
// degrades to plain text when piped or when NO_COLOR is set.
var (
	typeColor = color.New(color.FgCyan)
	propColor = color.New(color.FgYellow)
	textColor = color.New(color.FgGreen)
	msgColor  = color.New(color.Bold)
)

// DebugOption adjusts a single Debug call.
type DebugOption func(*config.DebugOptions)

// WithMaxDepth limits how deep the dump descends.
func WithMaxDepth(depth int) DebugOption {
	return func(o *config.DebugOptions) { o.MaxDepth = depth }
}

// WithMessage prepends a heading to the dump.
func WithMessage(msg string) DebugOption {
	return func(o *config.DebugOptions) { o.Message = msg }
}

// Debug writes a colored dump of the current tree to stderr.
func (s *Screen) Debug(opts ...DebugOption) {
	s.DebugTo(os.Stderr, opts...)
}

// DebugTo writes the dump to w.
func (s *Screen) DebugTo(w io.Writer, opts ...DebugOption) {
	o := config.Snapshot().Debug
	for _, opt := range opts {
		opt(&o)
	}
	if o.Message != "" {
		msgColor.Fprintln(w, o.Message)
	}
	tree := s.Tree()
	if tree.Empty() {
		fmt.Fprintln(w, "(empty tree)")
		return
	}
	dumpNode(w, tree.Root(), 0, o.MaxDepth)
}

func dumpNode(w io.Writer, in instance.Instance, depth, maxDepth int) {
	indent := strings.Repeat("  ", depth)
	if in.IsText() {
		fmt.Fprintf(w, "%s%s\n", indent, textColor.Sprintf("%q", in.Text()))
		return
	}
	fmt.Fprintf(w, "%s<%s%s>\n", indent, typeColor.Sprint(in.Type()), dumpProps(in.Props()))
	if maxDepth > 0 && depth+1 >= maxDepth {
		if len(in.Children()) > 0 {
			fmt.Fprintf(w, "%s  ...\n", indent)
		}
		return
	}
	in.VisitChildren(func(c instance.Instance) bool {
		dumpNode(w, c, depth+1, maxDepth)
		return true
	})
}

func dumpProps(p instance.Props) string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		switch v := p[k].(type) {
		case string:
			b.WriteString(propColor.Sprintf(" %s=%q", k, v))
		default:
			b.WriteString(propColor.Sprintf(" %s=%v", k, v))
		}
	}
	return b.String()
}
