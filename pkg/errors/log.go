package errors

import (
	"fmt"
	"os"
	"sync"
)

var (
	warnMu   sync.Mutex
	warnOut  = os.Stderr
	warnSeen = map[string]bool{}
)

// Warnf writes a diagnostic line to stderr. Used for non-fatal conditions
// such as an unrecognized clock during async polling.
func Warnf(format string, args ...any) {
	warnMu.Lock()
	defer warnMu.Unlock()
	fmt.Fprintf(warnOut, "[probe warn] "+format+"\n", args...)
}

// WarnOncef is like Warnf but emits each distinct message at most once
// per process, keyed by the unformatted format string.
func WarnOncef(format string, args ...any) {
	warnMu.Lock()
	if warnSeen[format] {
		warnMu.Unlock()
		return
	}
	warnSeen[format] = true
	warnMu.Unlock()
	Warnf(format, args...)
}
