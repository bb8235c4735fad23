package screen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/probe/pkg/config"
	"github.com/go-drift/probe/pkg/instance"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot is the serializable form of a tree snapshot.
type Snapshot struct {
	Tree *SnapNode `json:"tree"`
}

// SnapNode is one serialized node. Exactly one of Type or Text is set.
type SnapNode struct {
	Type     string         `json:"type,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []*SnapNode    `json:"children,omitempty"`
}

// CaptureSnapshot serializes the current tree.
func (s *Screen) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	tree := s.Tree()
	if !tree.Empty() {
		snap.Tree = captureNode(tree.Root())
	}
	return snap
}

func captureNode(in instance.Instance) *SnapNode {
	if in.IsText() {
		return &SnapNode{Text: in.Text()}
	}
	n := &SnapNode{Type: in.Type()}
	if p := in.Props(); len(p) > 0 {
		n.Props = map[string]any(p)
	}
	in.VisitChildren(func(c instance.Instance) bool {
		n.Children = append(n.Children, captureNode(c))
		return true
	})
	return n
}

// MatchesFile compares this snapshot against a golden file. On mismatch
// it reports a diff and instructions for updating. When
// PROBE_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if config.UpdateSnapshots() {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, config.EnvUpdateSnapshots, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, config.EnvUpdateSnapshots, t.Name())
	}
}

// UpdateFile writes this snapshot to path, creating directories as
// needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a unified diff between this snapshot and other, or ""
// when equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := MarshalSnapshot(s)
	b, _ := MarshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return UnifiedDiff(string(b), string(a))
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

// MarshalSnapshot renders a snapshot as stable, indented JSON.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadSnapshotFile reads a snapshot file. Exported for the probe CLI.
func LoadSnapshotFile(path string) (*Snapshot, error) {
	return loadSnapshot(path)
}

// UnifiedDiff produces a simple line-oriented diff between expected and
// actual.
func UnifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := len(expectedLines)
	if len(actualLines) > maxLen {
		maxLen = len(actualLines)
	}

	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
