// Package config holds process-wide defaults consumed by the query and
// wait packages. Settings are mutable via Configure and restorable via
// Reset; readers take an immutable snapshot at call time so a query
// observes a consistent configuration even if another goroutine mutates
// settings mid-run.
package config

import (
	"os"
	"sync"
	"time"

	"github.com/go-drift/probe/pkg/instance"
)

// Environment switches consumed from the host process.
const (
	// EnvSkipAutoCleanup disables automatic post-test unmounting of
	// rendered trees when set to "1".
	EnvSkipAutoCleanup = "PROBE_SKIP_AUTO_CLEANUP"
	// EnvDisableClockDetection disables automatic detection of a
	// virtual timer environment when set to "1".
	EnvDisableClockDetection = "PROBE_DISABLE_VIRTUAL_CLOCK_DETECTION"
	// EnvUpdateSnapshots rewrites golden snapshot files instead of
	// comparing when set to "1".
	EnvUpdateSnapshots = "PROBE_UPDATE_SNAPSHOTS"
)

// DebugOptions tunes the tree dumps attached to errors and produced by
// Screen.Debug.
type DebugOptions struct {
	// MaxDepth limits how deep dumps descend. 0 means unlimited.
	MaxDepth int
	// Message is prepended to debug output when non-empty.
	Message string
}

// Settings are the process-wide defaults.
type Settings struct {
	// AsyncTimeout bounds Find* queries. Default 1s.
	AsyncTimeout time.Duration
	// AsyncInterval is the Find* polling cadence. Default 50ms.
	AsyncInterval time.Duration
	// IncludeHiddenElements makes queries match elements hidden from
	// accessibility by default. Default false.
	IncludeHiddenElements bool
	// Debug are the default debug-dump options.
	Debug DebugOptions
	// ConcurrentRoot indicates the host renderer mounts trees under a
	// concurrent root. Queries are read-only either way; this only
	// affects host integrations that consult it.
	ConcurrentRoot bool
	// TextComponentTypes are the component types treated as text hosts
	// by text queries. Default {"Text"}.
	TextComponentTypes []string
	// AccessibleName overrides the accessible-name computation used by
	// role queries with a Name filter. Nil selects the built-in rule
	// (label prop, falling back to joined visible text).
	AccessibleName func(instance.Instance) string
}

func defaults() Settings {
	return Settings{
		AsyncTimeout:       time.Second,
		AsyncInterval:      50 * time.Millisecond,
		TextComponentTypes: []string{"Text"},
	}
}

var (
	mu      sync.RWMutex
	current = defaults()
)

// Configure applies fn to the process-wide settings under lock.
func Configure(fn func(*Settings)) {
	mu.Lock()
	defer mu.Unlock()
	fn(&current)
}

// Reset restores the built-in defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}

// Snapshot returns a copy of the current settings. Slice fields are
// copied so the caller cannot observe later mutations.
func Snapshot() Settings {
	mu.RLock()
	defer mu.RUnlock()
	s := current
	s.TextComponentTypes = append([]string(nil), current.TextComponentTypes...)
	return s
}

// IsTextComponent reports whether typ is a text host under s.
func (s Settings) IsTextComponent(typ string) bool {
	for _, t := range s.TextComponentTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// SkipAutoCleanup reports whether automatic post-test cleanup is disabled.
func SkipAutoCleanup() bool {
	return os.Getenv(EnvSkipAutoCleanup) == "1"
}

// ClockDetectionDisabled reports whether virtual-clock detection is off.
func ClockDetectionDisabled() bool {
	return os.Getenv(EnvDisableClockDetection) == "1"
}

// UpdateSnapshots reports whether golden files should be rewritten.
func UpdateSnapshots() bool {
	return os.Getenv(EnvUpdateSnapshots) == "1"
}
