package safego

import (
	"runtime/debug"
	"sync"

	"github.com/andyrewlee/gridterm/internal/logging"
)

// PanicHandler receives panic details from recovered callbacks.
type PanicHandler func(name string, recovered any, stack []byte)

var (
	panicHandlerMu sync.RWMutex
	panicHandler   PanicHandler
)

// SetPanicHandler registers a global handler for recovered panics.
func SetPanicHandler(handler PanicHandler) {
	panicHandlerMu.Lock()
	panicHandler = handler
	panicHandlerMu.Unlock()
}

// Call executes fn on the current goroutine and reports whether it panicked.
// Runtime-fatal errors (e.g., concurrent map writes) are not recoverable.
func Call(name string, fn func()) (panicked bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		panicked = true
		label := name
		if label == "" {
			label = "goroutine"
		}
		stack := debug.Stack()
		logging.Error("panic in %s: %v\n%s", label, r, stack)
		panicHandlerMu.RLock()
		handler := panicHandler
		panicHandlerMu.RUnlock()
		if handler != nil {
			func() {
				defer func() { _ = recover() }()
				handler(label, r, stack)
			}()
		}
	}()
	fn()
	return false
}

// Run executes fn and converts panics into logged errors.
func Run(name string, fn func()) {
	Call(name, fn)
}

// Go runs fn in a new goroutine with panic recovery.
func Go(name string, fn func()) {
	go Run(name, fn)
}
