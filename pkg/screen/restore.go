// ABOUTME: Panic recovery for goroutines that own a Manager
// ABOUTME: Leaves the alternate screen and flushes before reporting or exiting

package screen

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/mauromedda/conscreen/internal/log"
	"github.com/mauromedda/conscreen/pkg/console"
)

// RecoverFatal should be deferred at the top of a goroutine that drives m.
// It recovers a fatal native console failure (a *console.NativeError
// panic), restores m and passes the error to onFatal. Any other panic is
// re-raised after m is restored.
func RecoverFatal(m Manager, onFatal func(error)) {
	r := recover()
	if r == nil {
		return
	}

	restore(m)

	nerr, ok := r.(*console.NativeError)
	if !ok {
		panic(r)
	}
	log.Error("fatal console failure: %v\n%s", nerr, debug.Stack())
	if onFatal != nil {
		onFatal(nerr)
	}
}

// RestoreOnPanic should be deferred at the top of main. On panic it
// restores m, prints the panic value and stack trace, then exits with code 1.
func RestoreOnPanic(m Manager) {
	r := recover()
	if r == nil {
		return
	}

	restore(m)

	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// restore is best-effort and must not panic itself.
func restore(m Manager) {
	defer func() { _ = recover() }()

	m.ToggleAlternateScreen(false)
	_ = m.Flush()
}
