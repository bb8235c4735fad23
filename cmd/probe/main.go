// Command probe inspects tree snapshot files produced by the screen
// package: "probe view" pretty-prints one, "probe diff" compares two.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/go-drift/probe/pkg/config"
	"github.com/go-drift/probe/pkg/screen"
)

const usage = `probe - inspect tree snapshot files

Usage:
  probe view <snapshot.json> [--max-depth N] [--no-color]
  probe diff <a.json> <b.json> [--no-color]
  probe root [dir]

Use "probe <command> --help" for details.`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "probe: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Println(usage)
		return nil
	}
	switch args[0] {
	case "view":
		return runView(args[1:])
	case "diff":
		return runDiff(args[1:])
	case "root":
		return runRoot(args[1:])
	case "help", "--help", "-h":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runView(args []string) error {
	flags := pflag.NewFlagSet("view", pflag.ContinueOnError)
	maxDepth := flags.Int("max-depth", 0, "limit dump depth (0 = unlimited)")
	noColor := flags.Bool("no-color", false, "disable colored output")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("view requires exactly one snapshot file")
	}
	if *noColor {
		color.NoColor = true
	}

	snap, err := screen.LoadSnapshotFile(flags.Arg(0))
	if err != nil {
		return err
	}
	printNode(snap.Tree, 0, *maxDepth)
	return nil
}

func runDiff(args []string) error {
	flags := pflag.NewFlagSet("diff", pflag.ContinueOnError)
	noColor := flags.Bool("no-color", false, "disable colored output")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		return fmt.Errorf("diff requires exactly two snapshot files")
	}
	if *noColor {
		color.NoColor = true
	}

	a, err := screen.LoadSnapshotFile(flags.Arg(0))
	if err != nil {
		return err
	}
	b, err := screen.LoadSnapshotFile(flags.Arg(1))
	if err != nil {
		return err
	}

	diff := b.Diff(a)
	if diff == "" {
		fmt.Println("snapshots are identical")
		return nil
	}
	printDiff(diff)
	os.Exit(1)
	return nil
}

// runRoot resolves and prints the enclosing module root, the directory
// probe.yaml is loaded from.
func runRoot(args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	proj, err := config.ResolveProject(dir)
	if err != nil {
		return err
	}
	fmt.Printf("%s\t%s\n", proj.Root, proj.ModulePath)
	return nil
}

var (
	typeColor = color.New(color.FgCyan)
	propColor = color.New(color.FgYellow)
	textColor = color.New(color.FgGreen)
	addColor  = color.New(color.FgGreen)
	delColor  = color.New(color.FgRed)
)

func printNode(n *screen.SnapNode, depth, maxDepth int) {
	if n == nil {
		fmt.Println("(empty tree)")
		return
	}
	for i := 0; i < depth; i++ {
		fmt.Print("  ")
	}
	if n.Type == "" {
		textColor.Printf("%q\n", n.Text)
		return
	}
	fmt.Printf("<%s", typeColor.Sprint(n.Type))
	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		propColor.Printf(" %s=%v", k, n.Props[k])
	}
	fmt.Println(">")
	if maxDepth > 0 && depth+1 >= maxDepth {
		if len(n.Children) > 0 {
			for i := 0; i <= depth; i++ {
				fmt.Print("  ")
			}
			fmt.Println("...")
		}
		return
	}
	for _, c := range n.Children {
		printNode(c, depth+1, maxDepth)
	}
}

func printDiff(diff string) {
	for _, line := range splitLines(diff) {
		switch {
		case len(line) > 0 && line[0] == '+':
			addColor.Println(line)
		case len(line) > 0 && line[0] == '-':
			delColor.Println(line)
		default:
			fmt.Println(line)
		}
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
