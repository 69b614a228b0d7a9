// Package core holds process-wide crash handling shared by every goroutine the game starts
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu    sync.Mutex
	crashReset func()
	crashOut   io.Writer = os.Stderr
	crashExit            = os.Exit
)

// SetCrashReset registers the terminal restore hook run before the crash report
// Typically tcell.Screen.Fini; nil disables the hook
func SetCrashReset(fn func()) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashReset = fn
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	reset, out, exit := crashReset, crashOut, crashExit
	crashReset = nil
	crashMu.Unlock()

	// Restore terminal to sane state before writing anything
	if reset != nil {
		reset()
	}

	// Use \r\n for raw mode compatibility to avoid zig-zag output
	fmt.Fprintf(out, "\r\n\x1b[31mVI-RACER CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(out, "Stack Trace:\r\n%s\r\n", debug.Stack())

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
