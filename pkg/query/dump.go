package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-drift/probe/pkg/config"
	"github.com/go-drift/probe/pkg/instance"
)

// FormatTree serializes the tree into the indented plain-text form used
// in error messages, honoring the configured debug depth limit.
func FormatTree(tree *instance.Tree) string {
	return FormatTreeWith(tree, config.Snapshot().Debug)
}

// FormatTreeWith is FormatTree with explicit debug options.
func FormatTreeWith(tree *instance.Tree, opts config.DebugOptions) string {
	if tree.Empty() {
		return "(empty tree)"
	}
	var b strings.Builder
	if opts.Message != "" {
		b.WriteString(opts.Message)
		b.WriteString("\n")
	}
	formatNode(&b, tree.Root(), 0, opts.MaxDepth)
	return strings.TrimRight(b.String(), "\n")
}

func formatNode(b *strings.Builder, in instance.Instance, depth, maxDepth int) {
	indent := strings.Repeat("  ", depth)
	if in.IsText() {
		fmt.Fprintf(b, "%s%q\n", indent, in.Text())
		return
	}
	fmt.Fprintf(b, "%s<%s%s>\n", indent, in.Type(), formatProps(in.Props()))
	if maxDepth > 0 && depth+1 >= maxDepth {
		if len(in.Children()) > 0 {
			fmt.Fprintf(b, "%s  ...\n", indent)
		}
		return
	}
	in.VisitChildren(func(c instance.Instance) bool {
		formatNode(b, c, depth+1, maxDepth)
		return true
	})
}

// formatProps renders the prop bag with sorted keys so dumps are stable
// across runs.
func formatProps(p instance.Props) string {
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
			fmt.Fprintf(&b, " %s=%q", k, v)
		default:
			fmt.Fprintf(&b, " %s=%v", k, v)
		}
	}
	return b.String()
}
